// Package blob stores uploaded file contents outside the database. Names
// are generated, never caller supplied, so a stored name is safe to use as
// a path component.
package blob

import "context"

// Store holds raw file bytes under generated names.
type Store interface {
	// Save writes data under a fresh generated name. The extension of
	// originalName is preserved so downloads keep a sensible filename.
	Save(ctx context.Context, data []byte, originalName string) (string, error)
	// Open returns the stored bytes. A missing blob is NotFound.
	Open(ctx context.Context, name string) ([]byte, error)
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
}
