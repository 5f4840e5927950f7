// Package repository persists media and album records as flat JSON
// collections. Every mutation reads the whole file, modifies it in memory
// and writes it back through an atomic rename, so a crash never leaves a
// half-written collection. A per-store mutex serializes writers within the
// process; nothing here is safe against a second process sharing the files
// (last writer wins on the full collection).
package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	apperrors "omoide-api/internal/errors"
	"omoide-api/internal/models"
	"omoide-api/internal/textnorm"
)

type MediaRepository struct {
	path string
	mu   sync.Mutex
}

func NewMediaRepository(path string) *MediaRepository {
	return &MediaRepository{path: path}
}

// Reads the full collection. A missing file is an empty collection.
func (r *MediaRepository) load() ([]*models.MediaItem, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*models.MediaItem{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", apperrors.ErrStorage, r.path, err)
	}

	var items []*models.MediaItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", apperrors.ErrStorage, r.path, err)
	}
	return items, nil
}

// Writes the full collection to a temp file and renames it over the
// original, so readers never observe a partial write.
func (r *MediaRepository) persist(items []*models.MediaItem) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode media collection: %v", apperrors.ErrStorage, err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create data directory: %v", apperrors.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, "metadata-*.json")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", apperrors.ErrStorage, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: write temp file: %v", apperrors.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: close temp file: %v", apperrors.ErrStorage, err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: replace %s: %v", apperrors.ErrStorage, r.path, err)
	}
	return nil
}

// Save upserts the item by id. Replacing an existing record bumps its
// UpdatedAt. Returns the stored record.
func (r *MediaRepository) Save(item *models.MediaItem) (*models.MediaItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return nil, err
	}

	replaced := false
	for i, existing := range items {
		if existing.Id == item.Id {
			item.UpdatedAt = time.Now()
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}

	if err := r.persist(items); err != nil {
		return nil, err
	}
	return item, nil
}

// FindByID returns the record, or (nil, nil) when the id is absent.
func (r *MediaRepository) FindByID(id string) (*models.MediaItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.Id == id {
			return item, nil
		}
	}
	return nil, nil
}

// FindAll returns every record. Ordering is the caller's responsibility.
func (r *MediaRepository) FindAll() ([]*models.MediaItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

// Search applies every set query field as a logical AND over a linear scan
// of the collection. The filename predicate passes if either the stored or
// the display filename contains the raw term case-insensitively, or
// fuzzy-matches it after script/width normalization.
func (r *MediaRepository) Search(query models.SearchQuery) ([]*models.MediaItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return nil, err
	}

	results := make([]*models.MediaItem, 0)
	for _, item := range items {
		if matchesQuery(item, query) {
			results = append(results, item)
		}
	}
	return results, nil
}

func matchesQuery(item *models.MediaItem, query models.SearchQuery) bool {
	if query.Filename != "" {
		if !matchesFilename(item.Filename, query.Filename) &&
			!matchesFilename(item.OriginalFilename, query.Filename) {
			return false
		}
	}

	if query.MimeType != "" && item.MimeType != query.MimeType {
		return false
	}

	// Both date bounds are inclusive.
	if query.DateFrom != nil && item.CreatedAt.Before(*query.DateFrom) {
		return false
	}
	if query.DateTo != nil && item.CreatedAt.After(*query.DateTo) {
		return false
	}

	if len(query.Tags) > 0 && !hasAnyTag(item.Tags, query.Tags) {
		return false
	}

	return true
}

func matchesFilename(name, term string) bool {
	if strings.Contains(strings.ToLower(name), strings.ToLower(term)) {
		return true
	}
	return textnorm.FuzzyMatch(name, term)
}

func hasAnyTag(itemTags, queryTags []string) bool {
	for _, qt := range queryTags {
		for _, it := range itemTags {
			if it == qt {
				return true
			}
		}
	}
	return false
}

// Delete removes the record with the given id. Deleting an absent id is a
// no-op, not an error.
func (r *MediaRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return err
	}

	filtered := items[:0]
	for _, item := range items {
		if item.Id != id {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == len(items) {
		return nil
	}
	return r.persist(filtered)
}

// AllTags returns the distinct tag strings across all records, sorted
// ascending.
func (r *MediaRepository) AllTags() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, item := range items {
		for _, tag := range item.Tags {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// UpdateTags replaces the record's tag list, deduplicating while keeping
// first-occurrence order, and bumps UpdatedAt. An absent id reports
// ErrNotFound and leaves the store unchanged.
func (r *MediaRepository) UpdateTags(id string, tags []string) (*models.MediaItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if item.Id == id {
			item.Tags = dedupeTags(tags)
			item.UpdatedAt = time.Now()
			if err := r.persist(items); err != nil {
				return nil, err
			}
			return item, nil
		}
	}
	return nil, fmt.Errorf("%w: media item %s", apperrors.ErrNotFound, id)
}

func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
