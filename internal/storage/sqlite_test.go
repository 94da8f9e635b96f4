package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)

	if _, err := store.Get(ctx, "state-seat-ibiza"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing key error = %v, want ErrNotFound", err)
	}

	want := []byte(`{"listings":{"a1":{"id":"a1"}}}`)
	if err := store.Put(ctx, "state-seat-ibiza", want); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "state-seat-ibiza")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("blob mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteUpsert(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)

	if err := store.Put(ctx, "k", []byte("one")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, "k", []byte("two")); err != nil {
		t.Fatalf("put again: %v", err)
	}

	got, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff("two", string(got)); diff != "" {
		t.Errorf("blob mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteKeysIsolated(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)

	if err := store.Put(ctx, "state-a", []byte("aa")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, "state-b", []byte("bb")); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "state-a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff("aa", string(got)); diff != "" {
		t.Errorf("blob mismatch (-want +got):\n%s", diff)
	}
}
