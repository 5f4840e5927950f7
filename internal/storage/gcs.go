package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"cloud.google.com/go/storage"

	apperrors "omoide-api/internal/errors"
)

// GCSStorage keeps blobs as objects in a Google Cloud Storage bucket,
// for deployments without a persistent local disk. Object names are the
// blob names under a fixed prefix.
type GCSStorage struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCSStorage(client *storage.Client, bucket, prefix string) *GCSStorage {
	return &GCSStorage{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func (s *GCSStorage) object(name string) *storage.ObjectHandle {
	return s.client.Bucket(s.bucket).Object(s.prefix + name)
}

func (s *GCSStorage) Save(ctx context.Context, name string, data []byte) (string, error) {
	w := s.object(name).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("%w: write object %s: %v", apperrors.ErrStorage, name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%w: finalize object %s: %v", apperrors.ErrStorage, name, err)
	}

	return fmt.Sprintf("gs://%s/%s%s", s.bucket, s.prefix, name), nil
}

func (s *GCSStorage) Read(ctx context.Context, name string) ([]byte, error) {
	r, err := s.object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: read object %s: %v", apperrors.ErrStorage, name, err)
	}
	defer r.Close()

	return io.ReadAll(r)
}

// Delete removes the object, treating "already gone" as success.
func (s *GCSStorage) Delete(ctx context.Context, name string) error {
	if err := s.object(name).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		log.Printf("[Storage] Failed to delete object %s: %v", name, err)
	}
	return nil
}

func (s *GCSStorage) Exists(ctx context.Context, name string) bool {
	_, err := s.object(name).Attrs(ctx)
	return err == nil
}

func (s *GCSStorage) URL(name string) string {
	return "/api/media/file/" + name
}
