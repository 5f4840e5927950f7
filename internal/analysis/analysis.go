// Package analysis consumes a cloud vision model to suggest descriptive
// filenames and tags for uploaded images. Callers must treat every failure
// as a cue to fall back; nothing here is allowed to sink an upload.
package analysis

import (
	"context"
	"strings"
)

// ImageAnalyzer is the external image analysis capability.
type ImageAnalyzer interface {
	// GenerateFilename suggests a short descriptive display name for the
	// image, without extension.
	GenerateFilename(ctx context.Context, imageData []byte, mimeType string) (string, error)

	// GenerateTags picks the tags from candidates that fit the image,
	// at most five. Empty candidates short-circuit to an empty result.
	GenerateTags(ctx context.Context, imageData []byte, mimeType string, candidates []string) ([]string, error)
}

const maxFilenameRunes = 20

// SanitizeFilename strips characters that are unsafe in filenames,
// replaces whitespace runs with underscores, drops Japanese corner
// brackets and caps the result at 20 runes.
func SanitizeFilename(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case strings.ContainsRune(`<>:"/\|?*`, r):
			continue
		case strings.ContainsRune("「」『』", r):
			continue
		case r == ' ' || r == '\t' || r == '\n' || r == '　':
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteRune(r)
		lastUnderscore = false
	}

	runes := []rune(b.String())
	if len(runes) > maxFilenameRunes {
		runes = runes[:maxFilenameRunes]
	}
	return string(runes)
}
