package session_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/digesto-dev/digesto/pkg/internal/session"
)

func TestToggleTag(t *testing.T) {
	f := session.NewFilterState()

	if !f.ToggleTag("urgente") {
		t.Fatal("first toggle should add the tag")
	}

	if f.ToggleTag("urgente") {
		t.Fatal("second toggle should remove the tag")
	}

	if got := f.Tags(); len(got) != 0 {
		t.Fatalf("tags = %v, want empty", got)
	}
}

func TestTagsSorted(t *testing.T) {
	f := session.NewFilterState()
	f.ToggleTag("zonificacion")
	f.ToggleTag("ambiente")
	f.ToggleTag("presupuesto")

	want := []string{"ambiente", "presupuesto", "zonificacion"}
	if got := f.Tags(); !reflect.DeepEqual(got, want) {
		t.Fatalf("tags = %v, want %v", got, want)
	}
}

func TestResetClearsEverything(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	f := session.NewFilterState()
	f.SearchTerm = "tax"
	f.DateFrom = &from
	f.DateTo = &to
	f.TypeOrCategory = "ordinance"
	f.ToggleTag("urgente")

	if f.IsDefault() {
		t.Fatal("filter reported default while populated")
	}

	f.Reset()

	if !f.IsDefault() {
		t.Fatalf("filter not default after reset: %+v", f)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	f := session.NewFilterState()
	f.ToggleTag("urgente")

	clone := f.Clone()
	clone.ToggleTag("ambiente")

	if len(f.Tags()) != 1 {
		t.Fatalf("mutating clone leaked into original: %v", f.Tags())
	}
}

func TestToQueryCarriesAllFilters(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	f := session.NewFilterState()
	f.SearchTerm = "zoning"
	f.TypeOrCategory = "resolution"
	f.DateFrom = &from
	f.ToggleTag("urgente")

	q := f.ToQuery(2, 10, 42)

	if q.Search != "zoning" || q.Type != "resolution" || q.CategoryID != 42 {
		t.Fatalf("query = %+v", q)
	}

	if q.Page != 2 || q.Limit != 10 {
		t.Fatalf("pagination in query = %d/%d, want 2/10", q.Page, q.Limit)
	}

	if len(q.Tags) != 1 || q.Tags[0] != "urgente" {
		t.Fatalf("tags = %v", q.Tags)
	}

	if q.DateFrom == nil || !q.DateFrom.Equal(from) {
		t.Fatalf("dateFrom = %v, want %v", q.DateFrom, from)
	}
}

// 起始日期晚于结束日期的区间原样输出，不做本地校正.
func TestToQueryKeepsInvertedDateRange(t *testing.T) {
	from := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	f := session.NewFilterState()
	f.DateFrom = &from
	f.DateTo = &to

	q := f.ToQuery(1, 10, 0)
	v := q.Values()

	if v.Get("dateFrom") != "2024-12-01" || v.Get("dateTo") != "2024-01-01" {
		t.Fatalf("dates = %s..%s, want inverted range sent as-is", v.Get("dateFrom"), v.Get("dateTo"))
	}
}
