package prefs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "prefs.json"))
}

func TestFileStore_GetMissingFile(t *testing.T) {
	store := newTestFileStore(t)

	got, err := store.Get(context.Background(), "filterLevel")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no values before first write, got %v", got)
	}
}

func TestFileStore_SetThenGet(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	err := store.Set(ctx, map[string]json.RawMessage{
		"filterLevel":  json.RawMessage(`1`),
		"censorImages": json.RawMessage(`false`),
	})
	if err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := store.Get(ctx, "filterLevel", "censorImages", "neverSet")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if string(got["filterLevel"]) != "1" {
		t.Errorf("filterLevel = %s, want 1", got["filterLevel"])
	}
	// A stored false must be returned, distinguishable from absence.
	if string(got["censorImages"]) != "false" {
		t.Errorf("censorImages = %s, want false", got["censorImages"])
	}
	if _, ok := got["neverSet"]; ok {
		t.Error("unset key should be absent from the result")
	}
}

func TestFileStore_PartialSetPreservesOtherKeys(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, map[string]json.RawMessage{"a": json.RawMessage(`1`)}); err != nil {
		t.Fatalf("set a: %v", err)
	}
	if err := store.Set(ctx, map[string]json.RawMessage{"b": json.RawMessage(`2`)}); err != nil {
		t.Fatalf("set b: %v", err)
	}

	got, err := store.Get(ctx, "a", "b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got["a"]) != "1" || string(got["b"]) != "2" {
		t.Errorf("got a=%s b=%s, want a=1 b=2", got["a"], got["b"])
	}
}

func TestFileStore_Delete(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, map[string]json.RawMessage{"a": json.RawMessage(`1`)}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Delete(ctx, "a", "neverSet"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := store.Get(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, ok := got["a"]; ok {
		t.Error("deleted key should be absent")
	}
}

func TestFileStore_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "prefs.json"))

	if err := store.Set(context.Background(), map[string]json.RawMessage{"a": json.RawMessage(`1`)}); err != nil {
		t.Fatalf("set: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "prefs.json.tmp")); !os.IsNotExist(err) {
		t.Error("temp file should have been renamed away")
	}
}
