// Package media provides the resize-and-composite engine: it decodes an
// image, fits it into a square, centres it on a solid canvas and encodes the
// result.
package media

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/maauso/picresize/internal/detect"
)

// Sink persists a rendered output under a file name and returns where it was stored.
type Sink interface {
	Save(ctx context.Context, name string, data io.Reader) (path string, err error)
}

// Options configures how every image of a batch is rendered.
type Options struct {
	// Size is the exact output canvas size.
	Size Size
	// Background fills the canvas. The zero value is fully transparent.
	Background color.NRGBA
	// Format overrides the output format. Empty keeps each source's format.
	Format detect.Format
	// Placement positions the scaled image. Defaults to PlacementSquare.
	Placement Placement
	// JPEGQuality is used for JPEG output. Defaults to DefaultJPEGQuality.
	JPEGQuality int
}

// FileError reports a failure to produce the output for one source file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("cannot create %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Processor renders source files and hands the results to a Sink.
type Processor struct {
	sink      Sink
	resampler Resampler
	opts      Options
}

// ProcessorOption is a function that configures a Processor.
type ProcessorOption func(*Processor)

// WithResampler sets the resampling backend.
func WithResampler(r Resampler) ProcessorOption {
	return func(p *Processor) {
		if r != nil {
			p.resampler = r
		}
	}
}

// NewProcessor creates a Processor writing to sink.
func NewProcessor(sink Sink, opts Options, popts ...ProcessorOption) (*Processor, error) {
	if err := opts.Size.Validate(); err != nil {
		return nil, err
	}
	if opts.Placement == "" {
		opts.Placement = PlacementSquare
	}
	if !opts.Placement.IsValid() {
		return nil, fmt.Errorf("unknown placement %q", opts.Placement)
	}
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = DefaultJPEGQuality
	}

	p := &Processor{
		sink:      sink,
		resampler: NewImagingResampler(),
		opts:      opts,
	}
	for _, opt := range popts {
		opt(p)
	}
	return p, nil
}

// Options returns the rendering options in effect.
func (p *Processor) Options() Options {
	return p.opts
}

// Process renders the image at path and saves it through the sink.
// It returns the stored output path. Per-file failures are *FileError values.
func (p *Processor) Process(ctx context.Context, path string) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	f, err := os.Open(path) // #nosec G304 - path comes from the scanned input directory
	if err != nil {
		return "", &FileError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	if err := p.Render(f, &buf); err != nil {
		return "", &FileError{Path: path, Err: err}
	}

	out, err := p.sink.Save(ctx, p.OutputName(path), &buf)
	if err != nil {
		return "", &FileError{Path: path, Err: err}
	}
	return out, nil
}

// Render decodes src, composites it and encodes the canvas to dst.
// The output format is the override if set, otherwise the source's format.
func (p *Processor) Render(src io.Reader, dst io.Writer) error {
	img, format, err := Decode(src)
	if err != nil {
		return err
	}
	if p.opts.Format != "" {
		format = p.opts.Format
	}

	canvas := Composite(img, p.opts.Size, p.opts.Background, p.resampler, p.opts.Placement)
	return Encode(dst, canvas, format, p.opts.JPEGQuality)
}

// OutputName returns the output file name for a source path. Without a
// format override the base name is kept as is; otherwise the extension is
// replaced by the override's.
func (p *Processor) OutputName(path string) string {
	base := filepath.Base(path)
	if p.opts.Format == "" {
		return base
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return stem + p.opts.Format.Extension()
}
