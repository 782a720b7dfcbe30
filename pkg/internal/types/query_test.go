package types_test

import (
	"testing"
	"time"

	"github.com/digesto-dev/digesto/pkg/internal/types"
)

func TestListFoldersQueryValues(t *testing.T) {
	q := types.ListFoldersQuery{Search: "ordenanza", Page: 2, Limit: 10}
	v := q.Values()

	if v.Get("search") != "ordenanza" || v.Get("page") != "2" || v.Get("limit") != "10" {
		t.Fatalf("values = %v", v)
	}
}

func TestListFoldersQueryOmitsZeroValues(t *testing.T) {
	v := types.ListFoldersQuery{}.Values()

	if len(v) != 0 {
		t.Fatalf("zero query produced %v, want empty", v)
	}
}

func TestListFilesQueryValues(t *testing.T) {
	from := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	q := types.ListFilesQuery{
		Search:     "presupuesto",
		Type:       "resolution",
		DateFrom:   &from,
		CategoryID: 42,
		Tags:       []string{"urgente", "ambiente"},
		Page:       3,
		Limit:      20,
	}
	v := q.Values()

	if v.Get("search") != "presupuesto" || v.Get("type") != "resolution" {
		t.Fatalf("values = %v", v)
	}

	if v.Get("dateFrom") != "2024-01-15" {
		t.Fatalf("dateFrom = %q", v.Get("dateFrom"))
	}

	if v.Get("dateTo") != "" {
		t.Fatalf("dateTo = %q, want omitted", v.Get("dateTo"))
	}

	if v.Get("categoryId") != "42" {
		t.Fatalf("categoryId = %q", v.Get("categoryId"))
	}

	if tags := v["tags[]"]; len(tags) != 2 || tags[0] != "urgente" || tags[1] != "ambiente" {
		t.Fatalf("tags = %v", tags)
	}
}
