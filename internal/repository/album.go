package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "omoide-api/internal/errors"
	"omoide-api/internal/models"
)

// AlbumRepository owns the album collection in its own flat file,
// independent of the media store. Album→media references are soft: a
// deleted media item leaves a dangling id behind.
type AlbumRepository struct {
	path string
	mu   sync.Mutex
}

func NewAlbumRepository(path string) *AlbumRepository {
	return &AlbumRepository{path: path}
}

func (r *AlbumRepository) load() ([]*models.Album, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*models.Album{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", apperrors.ErrStorage, r.path, err)
	}

	var albums []*models.Album
	if err := json.Unmarshal(data, &albums); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", apperrors.ErrStorage, r.path, err)
	}
	return albums, nil
}

func (r *AlbumRepository) persist(albums []*models.Album) error {
	data, err := json.MarshalIndent(albums, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode album collection: %v", apperrors.ErrStorage, err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create data directory: %v", apperrors.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, "albums-*.json")
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

// Create adds a new empty album. The name is trimmed and must be non-empty.
func (r *AlbumRepository) Create(name, description string) (*models.Album, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: album name is required", apperrors.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	albums, err := r.load()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	album := &models.Album{
		Id:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(description),
		MediaIds:    []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	albums = append(albums, album)
	if err := r.persist(albums); err != nil {
		return nil, err
	}
	return album, nil
}

func (r *AlbumRepository) FindAll() ([]*models.Album, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

// FindByID returns the album, or (nil, nil) when the id is absent.
func (r *AlbumRepository) FindByID(id string) (*models.Album, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	albums, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, album := range albums {
		if album.Id == id {
			return album, nil
		}
	}
	return nil, nil
}

// Update applies a partial patch. A patched cover image must be one of the
// album's members after the patch; an empty cover clears it.
func (r *AlbumRepository) Update(id string, patch models.AlbumPatch) (*models.Album, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	albums, err := r.load()
	if err != nil {
		return nil, err
	}

	album := findAlbum(albums, id)
	if album == nil {
		return nil, fmt.Errorf("%w: album %s", apperrors.ErrNotFound, id)
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: album name is required", apperrors.ErrInvalidInput)
		}
		album.Name = name
	}
	if patch.Description != nil {
		album.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.MediaIds != nil {
		album.MediaIds = dedupeTags(*patch.MediaIds)
	}
	if patch.CoverImageId != nil {
		album.CoverImageId = *patch.CoverImageId
	}

	if album.CoverImageId != "" && !slices.Contains(album.MediaIds, album.CoverImageId) {
		return nil, fmt.Errorf("%w: cover image %s is not in the album", apperrors.ErrInvalidInput, album.CoverImageId)
	}

	album.UpdatedAt = time.Now()
	if err := r.persist(albums); err != nil {
		return nil, err
	}
	return album, nil
}

// Delete removes the album. Referenced media items are untouched.
func (r *AlbumRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	albums, err := r.load()
	if err != nil {
		return err
	}

	filtered := albums[:0]
	for _, album := range albums {
		if album.Id != id {
			filtered = append(filtered, album)
		}
	}
	if len(filtered) == len(albums) {
		return fmt.Errorf("%w: album %s", apperrors.ErrNotFound, id)
	}
	return r.persist(filtered)
}

// AddMedia appends the given media ids, suppressing ones already present.
// The first newly added id becomes the cover when none is set. Returns the
// updated album and how many ids were actually added.
func (r *AlbumRepository) AddMedia(id string, mediaIds []string) (*models.Album, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	albums, err := r.load()
	if err != nil {
		return nil, 0, err
	}

	album := findAlbum(albums, id)
	if album == nil {
		return nil, 0, fmt.Errorf("%w: album %s", apperrors.ErrNotFound, id)
	}

	added := 0
	for _, mediaId := range mediaIds {
		if slices.Contains(album.MediaIds, mediaId) {
			continue
		}
		album.MediaIds = append(album.MediaIds, mediaId)
		if album.CoverImageId == "" {
			album.CoverImageId = mediaId
		}
		added++
	}

	if added == 0 {
		return album, 0, nil
	}

	album.UpdatedAt = time.Now()
	if err := r.persist(albums); err != nil {
		return nil, 0, err
	}
	return album, added, nil
}

// RemoveMedia drops the given media ids from the album. Removing the
// current cover reassigns it to the new first member, or clears it when
// the album empties.
func (r *AlbumRepository) RemoveMedia(id string, mediaIds []string) (*models.Album, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	albums, err := r.load()
	if err != nil {
		return nil, err
	}

	album := findAlbum(albums, id)
	if album == nil {
		return nil, fmt.Errorf("%w: album %s", apperrors.ErrNotFound, id)
	}

	remaining := make([]string, 0, len(album.MediaIds))
	for _, mediaId := range album.MediaIds {
		if !slices.Contains(mediaIds, mediaId) {
			remaining = append(remaining, mediaId)
		}
	}
	album.MediaIds = remaining

	if album.CoverImageId != "" && slices.Contains(mediaIds, album.CoverImageId) {
		if len(remaining) > 0 {
			album.CoverImageId = remaining[0]
		} else {
			album.CoverImageId = ""
		}
	}

	album.UpdatedAt = time.Now()
	if err := r.persist(albums); err != nil {
		return nil, err
	}
	return album, nil
}

func findAlbum(albums []*models.Album, id string) *models.Album {
	for _, album := range albums {
		if album.Id == id {
			return album
		}
	}
	return nil
}
