package config

import (
	"errors"
	"fmt"
)

// Static errors for argument validation.
var (
	// ErrInvalidFolder is returned when --folder is not an existing directory.
	ErrInvalidFolder = errors.New("not a valid folder path")
	// ErrFolderNotWritable is returned when --folder cannot be written to.
	ErrFolderNotWritable = errors.New("folder is not writable")
	// ErrInvalidSize is returned when --size is not WxH with positive integers.
	ErrInvalidSize = errors.New("size should be in format 150x200")
	// ErrInvalidFormat is returned when --type is not a supported output format.
	ErrInvalidFormat = errors.New("type should be one of jpg, png")
	// ErrInvalidColor is returned when --color cannot be parsed.
	ErrInvalidColor = errors.New("color should be a name, #hex or r,g,b[,a] tuple")
)

// ConfigError reports an invalid command-line value. It is raised before any
// file is processed.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
