package models

import "time"

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ExifData holds the typed EXIF fields the upload pipeline extracts.
// Tags that do not map to a typed field are kept verbatim in Raw.
type ExifData struct {
	Make    string            `json:"make,omitempty"`
	Model   string            `json:"model,omitempty"`
	TakenAt string            `json:"takenAt,omitempty"` // RFC 3339
	Raw     map[string]string `json:"raw,omitempty"`
}

type Metadata struct {
	Exif     *ExifData `json:"exif,omitempty"`
	Location *Location `json:"location,omitempty"`
}

type MediaItem struct {
	Id               string    `json:"id"`
	Filename         string    `json:"filename"`         // stored blob name, derived from Id
	OriginalFilename string    `json:"originalFilename"` // display name, may be AI-generated
	MimeType         string    `json:"mimeType"`
	Size             int64     `json:"size"`
	Width            int       `json:"width,omitempty"`
	Height           int       `json:"height,omitempty"`
	Duration         float64   `json:"duration,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	Tags             []string  `json:"tags"`
	Metadata         Metadata  `json:"metadata"`
}

// SearchQuery describes an AND-combined filter over the media collection.
// Nil/empty fields are not applied.
type SearchQuery struct {
	Filename string
	MimeType string
	DateFrom *time.Time
	DateTo   *time.Time
	Tags     []string
}

type Album struct {
	Id           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	CoverImageId string    `json:"coverImageId,omitempty"`
	MediaIds     []string  `json:"mediaIds"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AlbumPatch is a partial album update. Nil fields are left untouched.
type AlbumPatch struct {
	Name         *string
	Description  *string
	MediaIds     *[]string
	CoverImageId *string
}

// UploadFile is one raw file taken from a multipart batch-upload request.
type UploadFile struct {
	Name     string
	MimeType string
	Data     []byte
}

type UploadError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

type UploadSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// BatchUploadResult aggregates per-file outcomes of one upload batch.
// Partial failure is reported here, never as an error.
type BatchUploadResult struct {
	Results []*MediaItem  `json:"results"`
	Errors  []UploadError `json:"errors"`
	Summary UploadSummary `json:"summary"`
}

type DeleteResult struct {
	Id      string `json:"id"`
	Success bool   `json:"success"`
}

type DeleteError struct {
	Id    string `json:"id"`
	Error string `json:"error"`
}

// BatchDeleteResult aggregates per-id outcomes of a batch delete.
type BatchDeleteResult struct {
	Results      []DeleteResult `json:"results"`
	Errors       []DeleteError  `json:"errors"`
	DeletedCount int            `json:"deletedCount"`
	ErrorCount   int            `json:"errorCount"`
}
