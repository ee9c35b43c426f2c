package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Static errors for storage operations.
var (
	// ErrS3NotConfigured is returned when S3 storage is requested without a bucket and region.
	ErrS3NotConfigured = errors.New("S3 storage is not configured")
	// ErrInvalidName is returned when an output name contains path components.
	ErrInvalidName = errors.New("invalid output name")
	// ErrNotDirectory is returned when the output path exists but is not a directory.
	ErrNotDirectory = errors.New("output path is not a directory")
)

// OutputDirName is the subdirectory of the input folder receiving outputs.
const OutputDirName = "resized"

// LocalStorage implements the Storage interface using local disk.
type LocalStorage struct {
	dir string
}

// NewLocalStorage creates a new LocalStorage writing into dir.
// The directory is created if it doesn't exist; an existing directory is reused.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty output directory", ErrInvalidName)
	}

	if err := os.Mkdir(dir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat output directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	return &LocalStorage{dir: dir}, nil
}

// Dir returns the output directory path.
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Save writes data to a temporary file in the output directory and renames
// it over the final name, so a failed write never leaves a partial output.
func (s *LocalStorage) Save(ctx context.Context, name string, data io.Reader) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	f, err := os.CreateTemp(s.dir, "."+name+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	tmpName := f.Name()
	if _, err := io.Copy(f, data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("write output file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("close output file: %w", err)
	}

	if err := os.Chmod(tmpName, 0o644); err != nil { // #nosec G302 - outputs are regular user images
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("chmod output file: %w", err)
	}

	dst := filepath.Join(s.dir, name)
	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("rename output file: %w", err)
	}

	return dst, nil
}
