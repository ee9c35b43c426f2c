// Package storage persists rendered images.
// It defines the Storage interface (port) and implementations for the local
// output directory and an optional S3 mirror.
package storage

import (
	"context"
	"io"
)

// Storage defines where batch outputs are written.
type Storage interface {
	// Save writes data under name, replacing any existing output with the
	// same name, and returns the local path of the stored file.
	// The name must be a plain file name without directory components.
	Save(ctx context.Context, name string, data io.Reader) (path string, err error)

	// Dir returns the local output directory.
	Dir() string
}
