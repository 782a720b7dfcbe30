package types_test

import (
	"testing"

	"github.com/digesto-dev/digesto/pkg/internal/types"
)

func TestHasAnyTag(t *testing.T) {
	f := types.File{Tags: []string{"urgente", "presupuesto"}}

	cases := []struct {
		name     string
		selected []string
		want     bool
	}{
		{"no selection matches everything", nil, true},
		{"single match", []string{"urgente"}, true},
		{"one of several matches", []string{"ambiente", "presupuesto"}, true},
		{"no overlap", []string{"ambiente", "zonificacion"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.HasAnyTag(tc.selected); got != tc.want {
				t.Fatalf("HasAnyTag(%v) = %v, want %v", tc.selected, got, tc.want)
			}
		})
	}
}

func TestHasAnyTagUntaggedFile(t *testing.T) {
	f := types.File{}

	if f.HasAnyTag([]string{"urgente"}) {
		t.Fatal("untagged file matched a tag selection")
	}

	if !f.HasAnyTag(nil) {
		t.Fatal("untagged file excluded by empty selection")
	}
}

// 标签过滤是“或”语义：命中任意一个选中标签即保留.
func TestFilterByTags(t *testing.T) {
	files := []types.File{
		{ID: 1, Tags: []string{"urgente"}},
		{ID: 2, Tags: []string{"presupuesto"}},
		{ID: 3, Tags: []string{"urgente", "ambiente"}},
		{ID: 4},
	}

	got := types.FilterByTags(files, []string{"urgente", "presupuesto"})

	want := []int64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("kept %d files, want %d", len(got), len(want))
	}

	for i, f := range got {
		if f.ID != want[i] {
			t.Fatalf("kept IDs %v, want %v", got, want)
		}
	}
}

func TestFilterByTagsEmptySelection(t *testing.T) {
	files := []types.File{{ID: 1}, {ID: 2, Tags: []string{"urgente"}}}

	if got := types.FilterByTags(files, nil); len(got) != 2 {
		t.Fatalf("empty selection kept %d files, want all", len(got))
	}
}
