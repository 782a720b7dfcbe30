package kv

import (
	"context"
	"testing"
	"time"
)

func newMemory(t *testing.T) KVStore {
	t.Helper()

	store, err := NewKVStore(context.Background(), KVTypeMemory, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestMemorySetGet(t *testing.T) {
	store := newMemory(t)
	ctx := context.Background()

	if err := store.Set(ctx, "k1", []byte("v1"), 0); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "k1")
	if err != nil {
		t.Fatal(err)
	}

	if string(got) != "v1" {
		t.Fatalf("got %q, want v1", got)
	}
}

func TestMemoryGetMissing(t *testing.T) {
	store := newMemory(t)

	if _, err := store.Get(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestMemoryDelete(t *testing.T) {
	store := newMemory(t)
	ctx := context.Background()

	_ = store.Set(ctx, "k1", []byte("v1"), 0)

	if err := store.Delete(ctx, "k1"); err != nil {
		t.Fatal(err)
	}

	exists, err := store.Exists(ctx, "k1")
	if err != nil {
		t.Fatal(err)
	}

	if exists {
		t.Fatal("key still exists after delete")
	}
}

func TestMemoryTTLExpiry(t *testing.T) {
	store := newMemory(t)
	ctx := context.Background()

	if err := store.Set(ctx, "ephemeral", []byte("v"), time.Second); err != nil {
		t.Fatal(err)
	}

	// TTL 粒度为秒
	time.Sleep(1100 * time.Millisecond)

	if _, err := store.Get(ctx, "ephemeral"); err == nil {
		t.Fatal("expired key still readable")
	}

	exists, err := store.Exists(ctx, "ephemeral")
	if err != nil {
		t.Fatal(err)
	}

	if exists {
		t.Fatal("expired key still reported as existing")
	}
}

func TestMemoryKeys(t *testing.T) {
	store := newMemory(t)
	ctx := context.Background()

	_ = store.Set(ctx, "a", []byte("1"), 0)
	_ = store.Set(ctx, "b", []byte("2"), 0)

	keys, err := store.Keys(ctx, "*")
	if err != nil {
		t.Fatal(err)
	}

	if len(keys) != 2 {
		t.Fatalf("keys = %v, want 2 entries", keys)
	}

	keys, err = store.Keys(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}

	if len(keys) != 1 || keys[0] != "a" {
		t.Fatalf("keys = %v, want [a]", keys)
	}
}

func TestTTLEnvelopeRoundTrip(t *testing.T) {
	encoded, wrapped, err := encodeWithTTL([]byte("payload"), time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	if !wrapped {
		t.Fatal("value with ttl not wrapped")
	}

	val, expired, wasWrapped, err := decodeWithTTL(encoded, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	if expired || !wasWrapped || string(val) != "payload" {
		t.Fatalf("decode = %q expired=%v wrapped=%v", val, expired, wasWrapped)
	}

	// 时间拨过期限后判定为过期
	_, expired, _, err = decodeWithTTL(encoded, time.Now().Add(2*time.Minute))
	if err != nil {
		t.Fatal(err)
	}

	if !expired {
		t.Fatal("value not expired past its deadline")
	}
}

func TestDecodeUnwrappedValue(t *testing.T) {
	val, expired, wrapped, err := decodeWithTTL([]byte("raw"), time.Now())
	if err != nil {
		t.Fatal(err)
	}

	if expired || wrapped || string(val) != "raw" {
		t.Fatalf("decode = %q expired=%v wrapped=%v", val, expired, wrapped)
	}
}
