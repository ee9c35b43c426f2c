// Package batch drives one resize run over an input directory: it lists the
// directory, keeps the files that sniff as images and renders each of them in
// turn, reporting failures without stopping.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/maauso/picresize/internal/detect"
)

// ErrNothingProcessed is returned by Report.Err when images were found but
// none of them could be rendered.
var ErrNothingProcessed = errors.New("no image could be processed")

// Processor renders one source file and returns the stored output path.
type Processor interface {
	Process(ctx context.Context, path string) (string, error)
}

// DetectFunc classifies a file by content.
type DetectFunc func(path string) (detect.Format, bool)

// Failure records a file that could not be rendered.
type Failure struct {
	Path string
	Err  error
}

// Report summarises a run.
type Report struct {
	// Scanned counts regular files in the input directory.
	Scanned int
	// Skipped lists regular files that were not recognised as images.
	Skipped []string
	// Outputs lists stored output paths, in processing order.
	Outputs []string
	// Failures lists images that could not be rendered.
	Failures []Failure
	// Duration is the wall time of the run.
	Duration time.Duration
}

// Candidates returns the number of files recognised as images.
func (r *Report) Candidates() int {
	return len(r.Outputs) + len(r.Failures)
}

// Err returns ErrNothingProcessed when every recognised image failed.
// An input directory without images is not an error.
func (r *Report) Err() error {
	if r.Candidates() > 0 && len(r.Outputs) == 0 {
		return fmt.Errorf("%w: %d failed", ErrNothingProcessed, len(r.Failures))
	}
	return nil
}

// Runner processes the images of a directory one at a time.
type Runner struct {
	processor Processor
	detect    DetectFunc
	logger    *slog.Logger
}

// RunnerOption is a function that configures a Runner.
type RunnerOption func(*Runner)

// WithDetector replaces the content sniffer.
func WithDetector(fn DetectFunc) RunnerOption {
	return func(r *Runner) {
		if fn != nil {
			r.detect = fn
		}
	}
}

// NewRunner creates a Runner using processor for every image.
func NewRunner(processor Processor, logger *slog.Logger, opts ...RunnerOption) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{
		processor: processor,
		detect:    detect.Detect,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes every image directly inside dir, in directory-listing order.
// Only a failure to list dir is returned as an error; per-file failures are
// logged and collected in the report.
func (r *Runner) Run(ctx context.Context, dir string) (*Report, error) {
	start := time.Now()

	paths, err := listFiles(dir)
	if err != nil {
		return nil, err
	}

	report := &Report{Scanned: len(paths)}
	for _, path := range paths {
		select {
		case <-ctx.Done():
			report.Duration = time.Since(start)
			return report, fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		format, ok := r.detect(path)
		if !ok {
			r.logger.Debug("skipping non-image file", slog.String("file", filepath.Base(path)))
			report.Skipped = append(report.Skipped, path)
			continue
		}

		out, err := r.processor.Process(ctx, path)
		if err != nil {
			r.logger.Error("cannot create output",
				slog.String("file", filepath.Base(path)),
				slog.String("error", err.Error()),
			)
			report.Failures = append(report.Failures, Failure{Path: path, Err: err})
			continue
		}

		r.logger.Info("image resized",
			slog.String("file", filepath.Base(path)),
			slog.String("format", format.String()),
			slog.String("output", out),
		)
		report.Outputs = append(report.Outputs, out)
	}

	report.Duration = time.Since(start)
	return report, nil
}

// listFiles returns the regular files directly inside dir, following
// symlinks, sorted by name.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}
