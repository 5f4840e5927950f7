package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 50 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestDimensions(t *testing.T) {
	data := encodeTestJPEG(t, 640, 480)

	w, h, err := Dimensions(data)
	if err != nil {
		t.Fatalf("Dimensions failed: %v", err)
	}
	if w != 640 || h != 480 {
		t.Errorf("Dimensions = %dx%d, want 640x480", w, h)
	}
}

func TestDimensionsInvalidData(t *testing.T) {
	if _, _, err := Dimensions([]byte("not an image")); err == nil {
		t.Error("Dimensions on garbage bytes: want error, got nil")
	}
}

func TestCompressImageBoundsLongestEdge(t *testing.T) {
	data := encodeTestJPEG(t, 400, 200)

	out, err := CompressImage(data, 100, 85)
	if err != nil {
		t.Fatalf("CompressImage failed: %v", err)
	}

	w, h, err := Dimensions(out)
	if err != nil {
		t.Fatalf("Dimensions on compressed output failed: %v", err)
	}
	if w != 100 || h != 50 {
		t.Errorf("compressed to %dx%d, want 100x50 (aspect preserved)", w, h)
	}
}

func TestCompressImageNoUpscale(t *testing.T) {
	data := encodeTestJPEG(t, 80, 60)

	out, err := CompressImage(data, 2048, 85)
	if err != nil {
		t.Fatalf("CompressImage failed: %v", err)
	}

	w, h, err := Dimensions(out)
	if err != nil {
		t.Fatalf("Dimensions failed: %v", err)
	}
	if w != 80 || h != 60 {
		t.Errorf("small image resized to %dx%d, want 80x60 untouched", w, h)
	}
}

func TestCompressImageReencodesPNGAsJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 30, 30))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode PNG: %v", err)
	}

	out, err := CompressImage(buf.Bytes(), 2048, 85)
	if err != nil {
		t.Fatalf("CompressImage failed: %v", err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("output format = %q, want jpeg", format)
	}
}

func TestIsHeifLike(t *testing.T) {
	tests := []struct {
		mimeType string
		want     bool
	}{
		{"image/heic", true},
		{"image/heif", true},
		{"image/HEIC", true},
		{"image/jpeg", false},
		{"video/mp4", false},
	}

	for _, tt := range tests {
		if got := IsHeifLike(tt.mimeType); got != tt.want {
			t.Errorf("IsHeifLike(%q) = %v, want %v", tt.mimeType, got, tt.want)
		}
	}
}

func TestConvertIfHeicPassthrough(t *testing.T) {
	data := encodeTestJPEG(t, 10, 10)

	name, mimeType, out := ConvertIfHeic("photo.jpg", "image/jpeg", data)
	if name != "photo.jpg" || mimeType != "image/jpeg" {
		t.Errorf("non-HEIC input rewritten: %s %s", name, mimeType)
	}
	if !bytes.Equal(out, data) {
		t.Error("non-HEIC bytes changed")
	}
}

func TestConvertIfHeicFailureFallsThrough(t *testing.T) {
	// Declared HEIC but undecodable: the original bytes must survive.
	name, mimeType, out := ConvertIfHeic("photo.heic", "image/heic", []byte("junk"))
	if name != "photo.heic" || mimeType != "image/heic" || string(out) != "junk" {
		t.Errorf("failed conversion did not pass through: %s %s %q", name, mimeType, out)
	}
}

func TestExtractExifNoExif(t *testing.T) {
	// Plain encoded JPEG carries no EXIF block.
	if _, _, err := ExtractExif(encodeTestJPEG(t, 10, 10)); err == nil {
		t.Error("ExtractExif on EXIF-less image: want error, got nil")
	}
}
