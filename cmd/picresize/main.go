// Package main provides the entry point for the picresize command.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/maauso/picresize/internal/bootstrap"
	"github.com/maauso/picresize/internal/config"
)

// Exit codes.
const (
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var ce *config.ConfigError
	if errors.As(err, &ce) || errors.Is(err, config.ErrUnexpectedArgs) {
		return exitUsage
	}
	return exitFailure
}

func run(args []string) error {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Create structured logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	// Parse and validate flags before touching any file
	opts, err := config.ParseArgs(args, executableDir(), os.Stderr)
	if err != nil {
		return err
	}

	logger.Info("starting picresize",
		slog.String("folder", opts.Folder),
		slog.String("size", opts.Size.String()),
		slog.String("type", opts.Format.String()),
		slog.String("resampler", cfg.Resampler),
		slog.String("placement", cfg.Placement),
		slog.Bool("s3_enabled", cfg.S3Enabled()),
	)

	deps, err := bootstrap.NewDependencies(cfg, opts, logger)
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := deps.Runner.Run(ctx, opts.Folder)
	if err != nil {
		return fmt.Errorf("resize %s: %w", opts.Folder, err)
	}

	logger.Info("batch finished",
		slog.String("output_dir", deps.Storage.Dir()),
		slog.Int("scanned", report.Scanned),
		slog.Int("images", report.Candidates()),
		slog.Int("written", len(report.Outputs)),
		slog.Int("failed", len(report.Failures)),
		slog.Duration("duration", report.Duration),
	)

	return report.Err()
}

// executableDir returns the directory holding the running binary, which is
// the default input folder. It falls back to the working directory.
func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
