package objstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var (
	_ Client = (*Local)(nil)
	_ Client = (*S3)(nil)
	_ Client = (*GCS)(nil)
)

func TestLocalPutGet(t *testing.T) {
	dir := t.TempDir()
	s := NewLocal(dir)
	ctx := context.Background()

	data := []byte(`{"id":"r1"}`)
	if err := s.Put(ctx, "assessments/r1.json", data); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "assessments/r1.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Get = %q, want %q", got, data)
	}

	expectedPath := filepath.Join(dir, "assessments", "r1.json")
	if _, err := os.Stat(expectedPath); err != nil {
		t.Errorf("expected file at %s: %v", expectedPath, err)
	}
}

func TestLocalGetNotFound(t *testing.T) {
	s := NewLocal(t.TempDir())
	_, err := s.Get(context.Background(), "assessments/missing.json")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLocalList(t *testing.T) {
	s := NewLocal(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"assessments/b.json", "assessments/a.json", "other/c.json"} {
		if err := s.Put(ctx, key, []byte("{}")); err != nil {
			t.Fatalf("Put %s: %v", key, err)
		}
	}

	keys, err := s.List(ctx, "assessments/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(keys) != 2 || keys[0] != "assessments/a.json" || keys[1] != "assessments/b.json" {
		t.Errorf("List = %v", keys)
	}
}

func TestLocalListMissingDir(t *testing.T) {
	s := NewLocal(filepath.Join(t.TempDir(), "not-created"))
	keys, err := s.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("List = %v, want empty", keys)
	}
}
