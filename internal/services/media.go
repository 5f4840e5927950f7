package services

import (
	"context"
	"fmt"
	"log"
	"mime"
	"path/filepath"
	"sort"
	"strings"

	"omoide-api/internal/analysis"
	apperrors "omoide-api/internal/errors"
	"omoide-api/internal/models"
	"omoide-api/internal/storage"
)

// MediaService couples the media record store with the blob store so that
// records and blobs are created and removed together.
type MediaService struct {
	media    MediaStore
	storage  storage.FileStorage
	cache    *BlobCache
	analyzer analysis.ImageAnalyzer // nil disables tag suggestions
}

func NewMediaService(media MediaStore, fileStorage storage.FileStorage, cache *BlobCache, analyzer analysis.ImageAnalyzer) *MediaService {
	return &MediaService{
		media:    media,
		storage:  fileStorage,
		cache:    cache,
		analyzer: analyzer,
	}
}

// List returns every media item, newest first.
func (s *MediaService) List() ([]*models.MediaItem, error) {
	items, err := s.media.FindAll()
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// Get fetches one item; an absent id reports ErrNotFound.
func (s *MediaService) Get(id string) (*models.MediaItem, error) {
	item, err := s.media.FindByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: media item %s", apperrors.ErrNotFound, id)
	}
	return item, nil
}

// Delete removes the blob (best effort) and then the record.
func (s *MediaService) Delete(ctx context.Context, id string) error {
	item, err := s.Get(id)
	if err != nil {
		return err
	}

	s.storage.Delete(ctx, item.Filename)
	s.cache.Invalidate(item.Filename)

	return s.media.Delete(id)
}

// BatchDelete removes each id independently and aggregates the outcomes.
// A missing or failing id never aborts the rest of the batch.
func (s *MediaService) BatchDelete(ctx context.Context, ids []string) *models.BatchDeleteResult {
	result := &models.BatchDeleteResult{
		Results: make([]models.DeleteResult, 0, len(ids)),
		Errors:  make([]models.DeleteError, 0),
	}

	for _, id := range ids {
		if err := s.Delete(ctx, id); err != nil {
			log.Printf("[Media] Failed to delete %s: %v", id, err)
			result.Errors = append(result.Errors, models.DeleteError{Id: id, Error: reasonFor(err)})
			continue
		}
		result.Results = append(result.Results, models.DeleteResult{Id: id, Success: true})
	}

	result.DeletedCount = len(result.Results)
	result.ErrorCount = len(result.Errors)
	return result
}

// UpdateTags replaces an item's tags; deduplication happens in the store.
func (s *MediaService) UpdateTags(id string, tags []string) (*models.MediaItem, error) {
	return s.media.UpdateTags(id, tags)
}

// AllTags returns the library's distinct tags, sorted.
func (s *MediaService) AllTags() ([]string, error) {
	return s.media.AllTags()
}

// ReadFile serves blob bytes with their content type, trying the in-memory
// cache before the storage backend.
func (s *MediaService) ReadFile(ctx context.Context, filename string) ([]byte, string, error) {
	if data, contentType, ok := s.cache.Get(filename); ok {
		return data, contentType, nil
	}

	data, err := s.storage.Read(ctx, filename)
	if err != nil {
		return nil, "", err
	}

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	s.cache.Set(filename, data, contentType)
	return data, contentType, nil
}

// SuggestTags runs the analysis collaborator over an existing image,
// offering the library's current tag vocabulary as candidates. Collaborator
// failures degrade to an empty suggestion.
func (s *MediaService) SuggestTags(ctx context.Context, id string) ([]string, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(item.MimeType, "image/") {
		return nil, fmt.Errorf("%w: tag suggestions are only available for images", apperrors.ErrInvalidInput)
	}
	if s.analyzer == nil {
		return []string{}, nil
	}

	candidates, err := s.media.AllTags()
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []string{}, nil
	}

	data, _, err := s.ReadFile(ctx, item.Filename)
	if err != nil {
		return nil, err
	}

	tags, err := s.analyzer.GenerateTags(ctx, data, item.MimeType, candidates)
	if err != nil {
		log.Printf("[Media] Tag suggestion failed for %s: %v", id, err)
		return []string{}, nil
	}
	return tags, nil
}
