// Package bootstrap provides dependency initialization for picresize.
package bootstrap

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/maauso/picresize/internal/batch"
	"github.com/maauso/picresize/internal/config"
	"github.com/maauso/picresize/internal/media"
	"github.com/maauso/picresize/internal/storage"
)

// Dependencies holds all initialized dependencies for a run.
type Dependencies struct {
	Storage   storage.Storage
	Processor *media.Processor
	Runner    *batch.Runner
}

// NewDependencies creates the output directory and wires storage, the
// resize engine and the batch runner.
func NewDependencies(cfg *config.Config, opts *config.Options, logger *slog.Logger) (*Dependencies, error) {
	outputDir := filepath.Join(opts.Folder, storage.OutputDirName)

	// Initialize storage (creates the output directory)
	store, err := initStorage(cfg, outputDir, logger)
	if err != nil {
		return nil, err
	}

	// Initialize the resize engine
	resampler, err := media.NewResampler(cfg.Resampler)
	if err != nil {
		return nil, fmt.Errorf("create resampler: %w", err)
	}

	processor, err := media.NewProcessor(store, media.Options{
		Size:        opts.Size,
		Background:  opts.Background,
		Format:      opts.Format,
		Placement:   media.Placement(cfg.Placement),
		JPEGQuality: cfg.JPEGQuality,
	}, media.WithResampler(resampler))
	if err != nil {
		return nil, fmt.Errorf("create processor: %w", err)
	}

	return &Dependencies{
		Storage:   store,
		Processor: processor,
		Runner:    batch.NewRunner(processor, logger),
	}, nil
}

// initStorage creates the appropriate storage backend based on configuration.
func initStorage(cfg *config.Config, outputDir string, logger *slog.Logger) (storage.Storage, error) {
	if cfg.S3Enabled() {
		s3Cfg := storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Prefix:          cfg.S3Prefix,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}
		s3Store, err := storage.NewS3Storage(outputDir, s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("create S3 storage: %w", err)
		}
		logger.Info("S3 mirror configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
			slog.String("prefix", cfg.S3Prefix),
		)
		return s3Store, nil
	}

	localStore, err := storage.NewLocalStorage(outputDir)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}
	logger.Debug("local storage configured",
		slog.String("output_dir", outputDir),
	)
	return localStore, nil
}
