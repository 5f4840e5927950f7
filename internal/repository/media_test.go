package repository

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	apperrors "omoide-api/internal/errors"
	"omoide-api/internal/models"
)

func newTestMediaRepo(t *testing.T) *MediaRepository {
	t.Helper()
	return NewMediaRepository(filepath.Join(t.TempDir(), "metadata.json"))
}

func testItem(id, original, mimeType string, createdAt time.Time, tags ...string) *models.MediaItem {
	if tags == nil {
		tags = []string{}
	}
	return &models.MediaItem{
		Id:               id,
		Filename:         id + ".jpg",
		OriginalFilename: original,
		MimeType:         mimeType,
		Size:             1024,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
		Tags:             tags,
	}
}

func TestSaveUpsertIdempotent(t *testing.T) {
	repo := newTestMediaRepo(t)
	item := testItem("a", "cat.jpg", "image/jpeg", time.Now())

	if _, err := repo.Save(item); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if _, err := repo.Save(item); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	items, err := repo.FindAll()
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("FindAll returned %d items, want 1", len(items))
	}
}

func TestSaveBumpsUpdatedAtOnReplace(t *testing.T) {
	repo := newTestMediaRepo(t)
	created := time.Now().Add(-time.Hour)
	item := testItem("a", "cat.jpg", "image/jpeg", created)

	if _, err := repo.Save(item); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	saved, err := repo.Save(testItem("a", "renamed.jpg", "image/jpeg", created))
	if err != nil {
		t.Fatalf("replace Save failed: %v", err)
	}
	if !saved.UpdatedAt.After(created) {
		t.Errorf("UpdatedAt not bumped on replace: %v", saved.UpdatedAt)
	}
}

func TestFindByIDMissingIsNotError(t *testing.T) {
	repo := newTestMediaRepo(t)

	item, err := repo.FindByID("nope")
	if err != nil {
		t.Fatalf("FindByID errored for missing id: %v", err)
	}
	if item != nil {
		t.Errorf("FindByID = %+v, want nil", item)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	repo := newTestMediaRepo(t)
	if _, err := repo.Save(testItem("a", "cat.jpg", "image/jpeg", time.Now())); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := repo.Delete("a"); err != nil {
		t.Fatalf("first Delete failed: %v", err)
	}
	if err := repo.Delete("a"); err != nil {
		t.Fatalf("second Delete errored: %v", err)
	}

	items, err := repo.FindAll()
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("store has %d items after delete, want 0", len(items))
	}
}

func TestUpdateTags(t *testing.T) {
	repo := newTestMediaRepo(t)
	if _, err := repo.Save(testItem("a", "cat.jpg", "image/jpeg", time.Now())); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	updated, err := repo.UpdateTags("a", []string{"cat", "pet", "cat"})
	if err != nil {
		t.Fatalf("UpdateTags failed: %v", err)
	}
	// Duplicates collapse, first-occurrence order survives.
	if len(updated.Tags) != 2 || updated.Tags[0] != "cat" || updated.Tags[1] != "pet" {
		t.Errorf("Tags = %v, want [cat pet]", updated.Tags)
	}
}

func TestUpdateTagsMissingId(t *testing.T) {
	repo := newTestMediaRepo(t)
	if _, err := repo.Save(testItem("a", "cat.jpg", "image/jpeg", time.Now(), "cat")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	_, err := repo.UpdateTags("nonexistent", []string{"x"})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("UpdateTags on missing id: got %v, want ErrNotFound", err)
	}

	// Store must be unchanged.
	item, err := repo.FindByID("a")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if len(item.Tags) != 1 || item.Tags[0] != "cat" {
		t.Errorf("store changed by failed UpdateTags: tags = %v", item.Tags)
	}
}

func TestAllTagsSorted(t *testing.T) {
	repo := newTestMediaRepo(t)
	now := time.Now()
	repo.Save(testItem("a", "a.jpg", "image/jpeg", now, "zebra", "cat"))
	repo.Save(testItem("b", "b.jpg", "image/jpeg", now, "cat", "apple"))

	tags, err := repo.AllTags()
	if err != nil {
		t.Fatalf("AllTags failed: %v", err)
	}
	want := []string{"apple", "cat", "zebra"}
	if len(tags) != len(want) {
		t.Fatalf("AllTags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("AllTags = %v, want %v", tags, want)
			break
		}
	}
}

func TestSearchAndSemantics(t *testing.T) {
	repo := newTestMediaRepo(t)
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jun := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	repo.Save(testItem("a", "a.jpg", "image/jpeg", jan, "cat"))
	repo.Save(testItem("b", "b.mp4", "video/mp4", jun, "dog"))

	results, err := repo.Search(models.SearchQuery{MimeType: "image/jpeg", Tags: []string{"cat"}})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].Id != "a" {
		t.Errorf("mime+tag search returned %d items, want exactly [a]", len(results))
	}

	results, err = repo.Search(models.SearchQuery{Tags: []string{"cat", "dog"}})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("any-of tag search returned %d items, want 2", len(results))
	}
}

func TestSearchDateRangeInclusive(t *testing.T) {
	repo := newTestMediaRepo(t)
	day := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	repo.Save(testItem("a", "a.jpg", "image/jpeg", day))

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"createdAt equals dateFrom", day, day.Add(24 * time.Hour), 1},
		{"createdAt equals dateTo", day.Add(-24 * time.Hour), day, 1},
		{"outside range", day.Add(time.Hour), day.Add(24 * time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := repo.Search(models.SearchQuery{DateFrom: &tt.from, DateTo: &tt.to})
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if len(results) != tt.want {
				t.Errorf("got %d results, want %d", len(results), tt.want)
			}
		})
	}
}

func TestSearchFuzzyFilename(t *testing.T) {
	repo := newTestMediaRepo(t)
	now := time.Now()
	repo.Save(testItem("a", "かわいいネコ.jpg", "image/jpeg", now))
	repo.Save(testItem("b", "sunset.jpg", "image/jpeg", now))

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"hiragana query matches katakana name", "ねこ", []string{"a"}},
		{"raw substring", "sunset", []string{"b"}},
		{"fullwidth latin query", "ｓｕｎｓｅｔ", []string{"b"}},
		{"no match", "いぬ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := repo.Search(models.SearchQuery{Filename: tt.query})
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if len(results) != len(tt.want) {
				t.Fatalf("got %d results, want %d", len(results), len(tt.want))
			}
			for i, id := range tt.want {
				if results[i].Id != id {
					t.Errorf("result[%d] = %s, want %s", i, results[i].Id, id)
				}
			}
		})
	}
}
