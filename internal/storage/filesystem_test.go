package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"shivuk/internal/domain"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	return store
}

func TestWriteAndRead(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	payload := []byte("png bytes")

	key, err := store.Write(ctx, "abc123.png", payload)
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if key != "abc123.png" {
		t.Fatalf("key = %q, want %q", key, "abc123.png")
	}

	got, err := store.Read(ctx, key)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("Read = %q, want %q", got, payload)
	}
}

func TestWriteCreatesNestedDirectories(t *testing.T) {
	store := newTestStore(t)

	key, err := store.Write(context.Background(), "2026/08/image.png", []byte("x"))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if key != "2026/08/image.png" {
		t.Fatalf("key = %q, want %q", key, "2026/08/image.png")
	}
	full := filepath.Join(store.BasePath(), "2026", "08", "image.png")
	if _, err := os.Stat(full); err != nil {
		t.Fatalf("stat nested file: %v", err)
	}
}

func TestReadMissingKey(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Read(context.Background(), "nope.png")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want domain.ErrNotFound", err)
	}
}

func TestWriteRejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	for _, key := range []string{"", "   ", "..", "../escape.png", "a/../../escape.png"} {
		if _, err := store.Write(context.Background(), key, []byte("x")); err == nil {
			t.Fatalf("Write(%q) succeeded, want error", key)
		}
	}
}

func TestWriteNormalizesKeys(t *testing.T) {
	store := newTestStore(t)

	key, err := store.Write(context.Background(), "./foo\\bar.png", []byte("x"))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if key != "foo/bar.png" {
		t.Fatalf("key = %q, want %q", key, "foo/bar.png")
	}
}

func TestExists(t *testing.T) {
	store := newTestStore(t)

	if store.Exists("ghost.png") {
		t.Fatal("Exists reported a file that was never written")
	}
	if _, err := store.Write(context.Background(), "real.png", []byte("x")); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if !store.Exists("real.png") {
		t.Fatal("Exists missed a written file")
	}
}

func TestWriteCanceledContext(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Write(ctx, "late.png", []byte("x")); err == nil {
		t.Fatal("expected the canceled context error")
	}
}
