package utils

import (
	"bytes"
	"fmt"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"omoide-api/internal/models"
)

// Walks every EXIF field into a flat name→value map.
type rawCollector struct {
	fields map[string]string
}

func (c *rawCollector) Walk(name exif.FieldName, tag *tiff.Tag) error {
	c.fields[string(name)] = tag.String()
	return nil
}

// ExtractExif decodes the EXIF block of an image and returns a structured
// record plus the GPS position when present. Images without EXIF data
// return an error; images without GPS return a nil location, not an error.
func ExtractExif(data []byte) (*models.ExifData, *models.Location, error) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode EXIF: %w", err)
	}

	record := &models.ExifData{}

	if tag, err := x.Get(exif.Make); err == nil {
		if v, err := tag.StringVal(); err == nil {
			record.Make = v
		}
	}
	if tag, err := x.Get(exif.Model); err == nil {
		if v, err := tag.StringVal(); err == nil {
			record.Model = v
		}
	}

	if dt, err := x.DateTime(); err == nil {
		record.TakenAt = dt.Format(time.RFC3339)
	} else if tag, err := x.Get(exif.DateTimeOriginal); err == nil {
		if v, err := tag.StringVal(); err == nil {
			// EXIF timestamps are typically "2006:01:02 15:04:05"
			if t, err := time.Parse("2006:01:02 15:04:05", v); err == nil {
				record.TakenAt = t.Format(time.RFC3339)
			}
		}
	}

	collector := &rawCollector{fields: make(map[string]string)}
	if err := x.Walk(collector); err == nil && len(collector.fields) > 0 {
		record.Raw = collector.fields
	}

	var location *models.Location
	if lat, lon, err := x.LatLong(); err == nil {
		location = &models.Location{Latitude: lat, Longitude: lon}
	}

	return record, location, nil
}
