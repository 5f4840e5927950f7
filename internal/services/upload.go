package services

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"omoide-api/internal/analysis"
	apperrors "omoide-api/internal/errors"
	"omoide-api/internal/models"
	"omoide-api/internal/storage"
	"omoide-api/internal/utils"
)

// UploadLimits are the validation and transform knobs of the pipeline.
type UploadLimits struct {
	MaxFiles          int
	MaxFileSize       int64
	AllowedTypes      []string
	CompressThreshold int64
	MaxImageDimension int
	JPEGQuality       int
}

// UploadService runs the batch upload pipeline: per file, validation,
// container normalization, optional AI naming, image transform, blob save
// and record save. Files are processed strictly sequentially, in input
// order, so partial-failure reporting stays deterministic.
type UploadService struct {
	storage  storage.FileStorage
	media    MediaStore
	analyzer analysis.ImageAnalyzer // nil disables AI naming
	limits   UploadLimits
}

func NewUploadService(fileStorage storage.FileStorage, media MediaStore, analyzer analysis.ImageAnalyzer, limits UploadLimits) *UploadService {
	return &UploadService{
		storage:  fileStorage,
		media:    media,
		analyzer: analyzer,
		limits:   limits,
	}
}

// ProcessBatch ingests the files one at a time and aggregates per-file
// outcomes. A file failing validation or processing becomes an error entry
// while the batch continues; only batch-level preconditions (empty batch,
// too many files) fail the whole call.
func (s *UploadService) ProcessBatch(ctx context.Context, files []models.UploadFile) (*models.BatchUploadResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files provided", apperrors.ErrInvalidInput)
	}
	if len(files) > s.limits.MaxFiles {
		return nil, fmt.Errorf("%w: at most %d files per upload", apperrors.ErrInvalidInput, s.limits.MaxFiles)
	}

	result := &models.BatchUploadResult{
		Results: make([]*models.MediaItem, 0, len(files)),
		Errors:  make([]models.UploadError, 0),
	}

	for _, file := range files {
		item, err := s.processFile(ctx, file)
		if err != nil {
			log.Printf("[Upload] %s failed: %v", file.Name, err)
			result.Errors = append(result.Errors, models.UploadError{
				Filename: file.Name,
				Error:    reasonFor(err),
			})
			continue
		}
		result.Results = append(result.Results, item)
	}

	result.Summary = models.UploadSummary{
		Total:      len(files),
		Successful: len(result.Results),
		Failed:     len(result.Errors),
	}
	return result, nil
}

func (s *UploadService) processFile(ctx context.Context, file models.UploadFile) (*models.MediaItem, error) {
	if !s.allowed(file.MimeType) {
		return nil, fmt.Errorf("%w: unsupported file type %s", apperrors.ErrInvalidInput, file.MimeType)
	}
	if int64(len(file.Data)) > s.limits.MaxFileSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", apperrors.ErrInvalidInput, s.limits.MaxFileSize)
	}

	name := file.Name
	mimeType := file.MimeType
	data := file.Data
	displayName := file.Name

	// QuickTime containers (iPhone .mov uploads) are treated as MP4.
	if isQuickTime(name, mimeType) {
		mimeType = "video/mp4"
		name = replaceExt(name, ".mp4")
	}

	var width, height int
	var metadata models.Metadata

	if strings.HasPrefix(mimeType, "image/") {
		name, mimeType, data = utils.ConvertIfHeic(name, mimeType, data)

		// EXIF is read before any re-encode strips it.
		if exifData, location, err := utils.ExtractExif(data); err == nil {
			metadata.Exif = exifData
			metadata.Location = location
		}

		if generated := s.generateName(ctx, name, data, mimeType); generated != "" {
			displayName = generated
		}

		if w, h, err := utils.Dimensions(data); err == nil {
			width, height = w, h
		} else {
			log.Printf("[Upload] Could not read dimensions of %s: %v", name, err)
		}

		if int64(len(data)) > s.limits.CompressThreshold {
			compressed, err := utils.CompressImage(data, s.limits.MaxImageDimension, s.limits.JPEGQuality)
			if err != nil {
				log.Printf("[Upload] Compression failed for %s, storing original: %v", name, err)
			} else {
				data = compressed
				mimeType = "image/jpeg"
				name = replaceExt(name, ".jpg")
			}
		}
	}

	id := uuid.New().String()
	blobName := id
	if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
		blobName += ext
	}

	if _, err := s.storage.Save(ctx, blobName, data); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &models.MediaItem{
		Id:               id,
		Filename:         blobName,
		OriginalFilename: displayName,
		MimeType:         mimeType,
		Size:             int64(len(data)),
		Width:            width,
		Height:           height,
		CreatedAt:        now,
		UpdatedAt:        now,
		Tags:             []string{},
		Metadata:         metadata,
	}

	saved, err := s.media.Save(item)
	if err != nil {
		// Best-effort cleanup so the blob directory does not accumulate
		// records the store never saw.
		s.storage.Delete(ctx, blobName)
		return nil, err
	}
	return saved, nil
}

// Asks the collaborator for a display name. Any failure, or an empty
// answer, means "keep the uploaded filename" — never abort the upload.
func (s *UploadService) generateName(ctx context.Context, name string, data []byte, mimeType string) string {
	if s.analyzer == nil {
		return ""
	}

	generated, err := s.analyzer.GenerateFilename(ctx, data, mimeType)
	if err != nil {
		log.Printf("[Upload] Filename generation failed for %s: %v", name, err)
		return ""
	}
	if generated == "" {
		return ""
	}

	if ext := filepath.Ext(name); ext != "" {
		return generated + ext
	}
	return generated
}

func (s *UploadService) allowed(mimeType string) bool {
	for _, t := range s.limits.AllowedTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}

func isQuickTime(name, mimeType string) bool {
	return mimeType == "video/quicktime" ||
		mimeType == "video/mov" ||
		strings.HasSuffix(strings.ToLower(name), ".mov")
}

func replaceExt(name, newExt string) string {
	if ext := filepath.Ext(name); ext != "" {
		return strings.TrimSuffix(name, ext) + newExt
	}
	return name + newExt
}

// Strips the wrapped sentinel prefix so callers see a clean reason.
func reasonFor(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{apperrors.ErrInvalidInput, apperrors.ErrStorage} {
		if prefix := sentinel.Error() + ": "; strings.HasPrefix(msg, prefix) {
			return strings.TrimPrefix(msg, prefix)
		}
	}
	return msg
}
