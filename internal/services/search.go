package services

import (
	"sort"
	"time"

	"omoide-api/internal/models"
)

// SearchService filters the media collection. The matching itself lives in
// the store (it scans the collection anyway); this layer owns presentation
// ordering.
type SearchService struct {
	media MediaStore
}

func NewSearchService(media MediaStore) *SearchService {
	return &SearchService{media: media}
}

// Search runs the query and returns matches newest first.
func (s *SearchService) Search(query models.SearchQuery) ([]*models.MediaItem, error) {
	results, err := s.media.Search(query)
	if err != nil {
		return nil, err
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}

func (s *SearchService) SearchByFilename(filename string) ([]*models.MediaItem, error) {
	return s.Search(models.SearchQuery{Filename: filename})
}

func (s *SearchService) SearchByDateRange(from, to time.Time) ([]*models.MediaItem, error) {
	return s.Search(models.SearchQuery{DateFrom: &from, DateTo: &to})
}

func (s *SearchService) SearchByMimeType(mimeType string) ([]*models.MediaItem, error) {
	return s.Search(models.SearchQuery{MimeType: mimeType})
}
