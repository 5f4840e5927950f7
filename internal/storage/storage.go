// Package storage persists raw media blobs, keyed by their generated
// filename. Two backends implement the same interface: local disk and
// Google Cloud Storage.
package storage

import "context"

// FileStorage stores and retrieves raw media blobs.
type FileStorage interface {
	// Save writes data under name, creating intermediate directories as
	// needed, and returns the resolved path. An existing blob with the
	// same name is overwritten silently.
	Save(ctx context.Context, name string, data []byte) (string, error)

	// Read returns the blob contents. A missing blob reports ErrNotFound.
	Read(ctx context.Context, name string) ([]byte, error)

	// Delete removes the blob. Deleting a blob that does not exist is not
	// an error.
	Delete(ctx context.Context, name string) error

	// Exists probes for the blob. I/O errors are treated as "does not
	// exist"; this probe never fails.
	Exists(ctx context.Context, name string) bool

	// URL maps a blob name to its externally servable path. Pure string
	// construction, no I/O.
	URL(name string) string
}
