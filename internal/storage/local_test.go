package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "omoide-api/internal/errors"
)

func TestLocalStorageSaveAndRead(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	ctx := context.Background()

	path, err := s.Save(ctx, "abc123.jpg", []byte("image-bytes"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("saved blob not on disk: %v", err)
	}

	data, err := s.Read(ctx, "abc123.jpg")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("Read = %q, want %q", data, "image-bytes")
	}
}

func TestLocalStorageSaveOverwrites(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	ctx := context.Background()

	if _, err := s.Save(ctx, "a.jpg", []byte("first")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := s.Save(ctx, "a.jpg", []byte("second")); err != nil {
		t.Fatalf("overwrite Save failed: %v", err)
	}

	data, err := s.Read(ctx, "a.jpg")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("Read after overwrite = %q, want %q", data, "second")
	}
}

func TestLocalStorageReadMissing(t *testing.T) {
	s := NewLocalStorage(t.TempDir())

	_, err := s.Read(context.Background(), "missing.jpg")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Read missing blob: got %v, want ErrNotFound", err)
	}
}

func TestLocalStorageDeleteIdempotent(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)
	ctx := context.Background()

	if _, err := s.Save(ctx, "a.jpg", []byte("x")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := s.Delete(ctx, "a.jpg"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.jpg")); !os.IsNotExist(err) {
		t.Fatal("blob still on disk after Delete")
	}

	// Deleting an absent blob must not error.
	if err := s.Delete(ctx, "a.jpg"); err != nil {
		t.Errorf("second Delete errored: %v", err)
	}
}

func TestLocalStorageExists(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	ctx := context.Background()

	if s.Exists(ctx, "a.jpg") {
		t.Error("Exists = true for missing blob")
	}
	if _, err := s.Save(ctx, "a.jpg", []byte("x")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !s.Exists(ctx, "a.jpg") {
		t.Error("Exists = false for saved blob")
	}
}

func TestLocalStorageURL(t *testing.T) {
	s := NewLocalStorage("/var/lib/omoide")
	if got := s.URL("abc.jpg"); got != "/api/media/file/abc.jpg" {
		t.Errorf("URL = %q, want %q", got, "/api/media/file/abc.jpg")
	}
}
