package utils

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/adrium/goheif"
	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// Checks if the MIME type indicates a HEIC or HEIF image format.
func IsHeifLike(mimeType string) bool {
	t := strings.ToLower(mimeType)
	return strings.Contains(t, "heic") || strings.Contains(t, "heif")
}

// Dimensions reads the pixel width and height of an encoded image without
// decoding the full bitmap.
func Dimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read image dimensions: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// CompressImage bounds the longest edge to maxDimension (never upscaling)
// and re-encodes as JPEG at the given quality. Returns the new bytes.
func CompressImage(data []byte, maxDimension, quality int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// ConvertHeicToJpeg converts HEIC/HEIF image data to JPEG with proper
// orientation handling. Returns the JPEG-encoded data or an error if
// conversion fails.
func ConvertHeicToJpeg(input []byte) ([]byte, error) {
	img, err := goheif.Decode(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("failed to decode HEIC: %w", err)
	}

	oriented := applyOrientation(img, input)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, oriented, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}

	return buf.Bytes(), nil
}

// Reads EXIF orientation and applies correct transformations to the image.
func applyOrientation(img image.Image, input []byte) image.Image {
	x, err := exif.Decode(bytes.NewReader(input))
	if err != nil {
		return img
	}

	orientTag, err := x.Get(exif.Orientation)
	if err != nil {
		return img
	}

	orient, err := orientTag.Int(0)
	if err != nil {
		return img
	}

	// EXIF orientation values: 1=normal, 2=flip-h, 3=180, 4=flip-v, 5=transpose, 6=270, 7=transverse, 8=90
	switch orient {
	case 1:
		return img
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		log.Printf("[Image] Unknown orientation value: %d", orient)
		return img
	}
}

// ConvertIfHeic converts HEIC/HEIF uploads to JPEG, rewriting the name
// extension and MIME type. Anything else, or a failed conversion, passes
// through unchanged.
func ConvertIfHeic(name, mimeType string, data []byte) (string, string, []byte) {
	if !IsHeifLike(mimeType) {
		return name, mimeType, data
	}

	converted, err := ConvertHeicToJpeg(data)
	if err != nil {
		log.Printf("[Image] HEIC conversion failed for %s: %v", name, err)
		return name, mimeType, data
	}

	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext) + ".jpg"
	} else {
		name += ".jpg"
	}

	return name, "image/jpeg", converted
}
