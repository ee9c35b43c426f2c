// Package config provides configuration loading from environment variables
// and command-line arguments.
package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lmittmann/tint"
	"github.com/sethvargo/go-envconfig"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config holds the environment-driven settings of the application.
// Per-run choices (folder, size, type, color) come from flags, see Options.
type Config struct {
	// Rendering settings
	Resampler   string `env:"RESAMPLER, default=imaging" json:"resampler" validate:"oneof=imaging nfnt"`
	Placement   string `env:"PLACEMENT, default=square" json:"placement" validate:"oneof=square canvas"`
	JPEGQuality int    `env:"JPEG_QUALITY, default=95" json:"jpeg_quality" validate:"min=1,max=100"`

	// Optional S3 mirror settings
	S3Bucket           string `env:"S3_BUCKET" json:"s3_bucket,omitempty"`
	S3Region           string `env:"S3_REGION" json:"s3_region,omitempty"`
	S3Prefix           string `env:"S3_PREFIX" json:"s3_prefix,omitempty"`
	S3Endpoint         string `env:"S3_ENDPOINT" json:"s3_endpoint,omitempty"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" json:"-"`     // Masked in JSON
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" json:"-"` // Masked in JSON

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text" json:"log_format" validate:"oneof=text json"`
	LogLevel  string `env:"LOG_LEVEL, default=info" json:"log_level"` // "debug", "info", "warn", "error"
	NoColor   string `env:"NO_COLOR" json:"-"`                        // any value disables colored text logs
}

// S3Enabled returns true if S3 configuration is provided.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	return load(context.Background(), nil)
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}

	ecfg := &envconfig.Config{Target: cfg}
	if lookuper != nil {
		ecfg.Lookuper = lookuper
	}
	if err := envconfig.ProcessWith(ctx, ecfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that enumerated settings hold known values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// NewLogger creates a structured logger writing to stderr.
// When LogFormat is "json", it outputs JSON logs; otherwise colored text.
func (c *Config) NewLogger() *slog.Logger {
	return c.newLogger(os.Stderr)
}

func (c *Config) newLogger(w io.Writer) *slog.Logger {
	level := parseLogLevel(c.LogLevel)

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
			NoColor:    c.NoColor != "",
		})
	}

	return slog.New(handler)
}

// String returns a string representation of the config with sensitive values masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Resampler: %s, Placement: %s, JPEGQuality: %d, S3Bucket: %s, S3Region: %s, S3Prefix: %s, S3Endpoint: %s, LogFormat: %s, LogLevel: %s}",
		c.Resampler,
		c.Placement,
		c.JPEGQuality,
		c.S3Bucket,
		c.S3Region,
		c.S3Prefix,
		c.S3Endpoint,
		c.LogFormat,
		c.LogLevel,
	)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
