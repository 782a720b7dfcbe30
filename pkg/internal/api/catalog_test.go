package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/digesto-dev/digesto/pkg/internal/api"
	"github.com/digesto-dev/digesto/pkg/internal/storage/kv"
)

func newTestCatalog(t *testing.T, handler http.Handler) *api.Catalog {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	nop := zerolog.Nop()
	client := api.NewClient(api.Options{BaseURL: srv.URL, Timeout: 2 * time.Second, Logger: &nop})

	store, err := kv.NewKVClient(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	return api.NewCatalog(client, store, 5*time.Minute)
}

func TestCatalogCachesCategories(t *testing.T) {
	var hits atomic.Int32

	ct := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"data":[{"id":10,"categoryLabel":"2024","folderId":7,"fileCount":3}]}`))
	}))

	ctx := context.Background()

	for i := 0; i < 3; i++ {
		cats, err := ct.ListCategories(ctx, 7)
		if err != nil {
			t.Fatal(err)
		}

		if len(cats) != 1 || cats[0].CategoryLabel != "2024" {
			t.Fatalf("categories = %+v", cats)
		}
	}

	if got := hits.Load(); got != 1 {
		t.Fatalf("backend hit %d times, want 1 (cached)", got)
	}
}

func TestCatalogInvalidateFolder(t *testing.T) {
	var hits atomic.Int32

	ct := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))

	ctx := context.Background()

	if _, err := ct.ListCategories(ctx, 7); err != nil {
		t.Fatal(err)
	}

	ct.InvalidateFolder(ctx, 7)

	if _, err := ct.ListCategories(ctx, 7); err != nil {
		t.Fatal(err)
	}

	if got := hits.Load(); got != 2 {
		t.Fatalf("backend hit %d times after invalidation, want 2", got)
	}
}

func TestCatalogCachesTagsIndependentlyPerKey(t *testing.T) {
	var catHits, tagHits atomic.Int32

	ct := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tags" {
			tagHits.Add(1)
			_, _ = w.Write([]byte(`{"data":[{"id":1,"tagName":"urgente"}]}`))

			return
		}

		catHits.Add(1)
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))

	ctx := context.Background()

	tags, err := ct.ListTags(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if len(tags) != 1 || tags[0].TagName != "urgente" {
		t.Fatalf("tags = %+v", tags)
	}

	if _, err := ct.ListTags(ctx); err != nil {
		t.Fatal(err)
	}

	if _, err := ct.ListCategories(ctx, 7); err != nil {
		t.Fatal(err)
	}

	// 分类取数不影响标签缓存
	ct.InvalidateFolder(ctx, 7)

	if _, err := ct.ListTags(ctx); err != nil {
		t.Fatal(err)
	}

	if tagHits.Load() != 1 || catHits.Load() != 1 {
		t.Fatalf("hits = tags %d / categories %d, want 1 / 1", tagHits.Load(), catHits.Load())
	}
}

func TestCatalogWithoutStoreIsPassthrough(t *testing.T) {
	var hits atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	t.Cleanup(srv.Close)

	nop := zerolog.Nop()
	client := api.NewClient(api.Options{BaseURL: srv.URL, Timeout: 2 * time.Second, Logger: &nop})
	ct := api.NewCatalog(client, nil, 5*time.Minute)

	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := ct.ListTags(ctx); err != nil {
			t.Fatal(err)
		}
	}

	if hits.Load() != 2 {
		t.Fatalf("backend hit %d times without store, want 2", hits.Load())
	}
}
