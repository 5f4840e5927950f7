package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	apperrors "omoide-api/internal/errors"
)

// LocalStorage keeps blobs as plain files under a base directory.
type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) *LocalStorage {
	return &LocalStorage{basePath: basePath}
}

func (s *LocalStorage) Save(ctx context.Context, name string, data []byte) (string, error) {
	fullPath := filepath.Join(s.basePath, name)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("%w: create media directory: %v", apperrors.ErrStorage, err)
	}

	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: write blob %s: %v", apperrors.ErrStorage, name, err)
	}

	return fullPath, nil
}

func (s *LocalStorage) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.basePath, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: read blob %s: %v", apperrors.ErrStorage, name, err)
	}
	return data, nil
}

// Delete removes the blob, treating "already gone" as success. Blob
// deletion is best-effort cleanup; failures are logged, not returned.
func (s *LocalStorage) Delete(ctx context.Context, name string) error {
	if err := os.Remove(filepath.Join(s.basePath, name)); err != nil && !os.IsNotExist(err) {
		log.Printf("[Storage] Failed to delete blob %s: %v", name, err)
	}
	return nil
}

func (s *LocalStorage) Exists(ctx context.Context, name string) bool {
	_, err := os.Stat(filepath.Join(s.basePath, name))
	return err == nil
}

func (s *LocalStorage) URL(name string) string {
	return "/api/media/file/" + name
}
