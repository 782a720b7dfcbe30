package cache_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/digesto-dev/digesto/pkg/cache"
)

// testCategory 测试用的分类结构体.
type testCategory struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// mockKVStore 模拟KV存储实现.
type mockKVStore struct {
	data map[string][]byte
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{
		data: make(map[string][]byte),
	}
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if value, exists := m.data[key]; exists {
		return value, nil
	}

	return nil, fmt.Errorf("key not found")
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mockKVStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockKVStore) Exists(ctx context.Context, key string) (bool, error) {
	_, exists := m.data[key]
	return exists, nil
}

func (m *mockKVStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}

	return keys, nil
}

func (m *mockKVStore) Close() error {
	return nil
}

func TestSetAndGet(t *testing.T) {
	c := cache.NewCache(newMockKVStore())
	ctx := context.Background()

	want := testCategory{ID: 10, Label: "2024", Count: 3}
	if err := cache.Set(ctx, c, "categories:7", want, time.Minute); err != nil {
		t.Fatal(err)
	}

	got, err := cache.Get[testCategory](ctx, c, "categories:7")
	if err != nil {
		t.Fatal(err)
	}

	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestGetMissingKey(t *testing.T) {
	c := cache.NewCache(newMockKVStore())

	if _, err := cache.Get[testCategory](context.Background(), c, "missing"); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestGetOrSetCallsGetterOnce(t *testing.T) {
	c := cache.NewCache(newMockKVStore())
	ctx := context.Background()

	calls := 0
	getter := func() ([]testCategory, error) {
		calls++

		return []testCategory{{ID: 1, Label: "2023"}}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := cache.GetOrSet(ctx, c, "categories:1", getter, time.Minute)
		if err != nil {
			t.Fatal(err)
		}

		if len(got) != 1 || got[0].Label != "2023" {
			t.Fatalf("got %+v", got)
		}
	}

	if calls != 1 {
		t.Fatalf("getter called %d times, want 1", calls)
	}
}

func TestGetOrSetPropagatesGetterError(t *testing.T) {
	c := cache.NewCache(newMockKVStore())

	wantErr := errors.New("backend down")
	_, err := cache.GetOrSet(context.Background(), c, "k", func() (string, error) {
		return "", wantErr
	}, time.Minute)

	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestDeleteAndExists(t *testing.T) {
	c := cache.NewCache(newMockKVStore())
	ctx := context.Background()

	if err := cache.Set(ctx, c, "k", "v", time.Minute); err != nil {
		t.Fatal(err)
	}

	exists, err := c.Exists(ctx, "k")
	if err != nil || !exists {
		t.Fatalf("exists = %v, err = %v", exists, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}

	exists, err = c.Exists(ctx, "k")
	if err != nil || exists {
		t.Fatalf("exists = %v after delete, err = %v", exists, err)
	}
}

func TestClear(t *testing.T) {
	store := newMockKVStore()
	c := cache.NewCache(store)
	ctx := context.Background()

	_ = cache.Set(ctx, c, "a", 1, time.Minute)
	_ = cache.Set(ctx, c, "b", 2, time.Minute)

	if err := c.Clear(ctx); err != nil {
		t.Fatal(err)
	}

	if len(store.data) != 0 {
		t.Fatalf("store still holds %d entries after clear", len(store.data))
	}
}
