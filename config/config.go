// Package config loads YAML conversion profiles.
//
// A profile describes the record layout (marker, offsets, byte and point
// order, metadata schema) together with output, input, and logging settings.
// Any section may be omitted; missing values keep their defaults.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/bkn/errs"
	"github.com/arloliu/bkn/format"
	"github.com/arloliu/bkn/layout"
	"github.com/arloliu/bkn/regression"
)

// Config represents a bkn2json conversion profile.
type Config struct {
	Layout   Layout   `yaml:"layout"`
	Input    Input    `yaml:"input"`
	Output   Output   `yaml:"output"`
	Analysis Analysis `yaml:"analysis"`
	Workers  int      `yaml:"workers"`
	Logging  Logging  `yaml:"logging"`
}

// Layout is the YAML form of layout.Layout.
type Layout struct {
	Marker           string            `yaml:"marker"`
	PointCountOffset int               `yaml:"point_count_offset"`
	PointArrayOffset int               `yaml:"point_array_offset"`
	ByteOrder        format.ByteOrder  `yaml:"byte_order"`
	PointOrder       format.PointOrder `yaml:"point_order"`
	MaxFieldLength   int               `yaml:"max_field_length"`
	Schema           layout.Schema     `yaml:"schema"`
}

// Input contains input file settings.
type Input struct {
	// Compression is "auto" (by file extension) or a compression name.
	Compression string `yaml:"compression"`
}

// Output contains rendering settings.
type Output struct {
	Metadata    format.MetadataMode    `yaml:"metadata"`
	Compression format.CompressionType `yaml:"compression"`
	Checksum    bool                   `yaml:"checksum"`
	Indent      bool                   `yaml:"indent"`
}

// Analysis contains curve fitting settings.
type Analysis struct {
	// Enabled adds a fit object to every record.
	Enabled bool `yaml:"enabled"`
	// Start and End bound the fitted time range; nil leaves that side open.
	Start *float64 `yaml:"start,omitempty"`
	End   *float64 `yaml:"end,omitempty"`
	// Models restricts the candidate models; empty fits all of them.
	Models []regression.ModelType `yaml:"models,omitempty"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
}

// AutoCompression selects the input codec from the file extension.
const AutoCompression = "auto"

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	def := layout.Default()

	return &Config{
		Layout: Layout{
			Marker:           string(def.Marker),
			PointCountOffset: def.PointCountOffset,
			PointArrayOffset: def.PointArrayOffset,
			ByteOrder:        def.ByteOrder,
			PointOrder:       def.PointOrder,
			MaxFieldLength:   def.MaxFieldLength,
			Schema:           def.Schema,
		},
		Input: Input{
			Compression: AutoCompression,
		},
		Output: Output{
			Metadata:    format.MetadataTyped,
			Compression: format.CompressionNone,
		},
		Workers: 1,
		Logging: Logging{
			Level: "warn",
		},
	}
}

// LoadConfig loads configuration from the specified path on top of DefaultConfig.
//
// Parameters:
//   - configPath: Path to a YAML profile
//
// Returns:
//   - *Config: The merged and validated configuration
//   - error: ErrIO if the file cannot be read, ErrInvalidConfig if it cannot be parsed or fails validation
func LoadConfig(configPath string) (*Config, error) {
	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid config path: %w", errs.ErrIO, err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %w", errs.ErrIO, err)
	}

	return Parse(data)
}

// Parse decodes a YAML profile on top of DefaultConfig and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config file: %w", errs.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig writes the configuration to configPath as YAML.
func SaveConfig(cfg *Config, configPath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal config: %w", errs.ErrInvalidConfig, err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("%w: failed to write config file: %w", errs.ErrIO, err)
	}

	return nil
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if _, err := c.BuildLayout(); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1, got %d", errs.ErrInvalidConfig, c.Workers)
	}
	if _, err := c.InputCompression("input.bkn"); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if _, err := c.FitOptions(); err != nil {
		return err
	}

	return nil
}

// BuildLayout converts the layout section into a validated layout.Layout.
func (c *Config) BuildLayout() (layout.Layout, error) {
	l := layout.Layout{
		Marker:           []byte(c.Layout.Marker),
		PointCountOffset: c.Layout.PointCountOffset,
		PointArrayOffset: c.Layout.PointArrayOffset,
		ByteOrder:        c.Layout.ByteOrder,
		PointOrder:       c.Layout.PointOrder,
		MaxFieldLength:   c.Layout.MaxFieldLength,
		Schema:           c.Layout.Schema,
	}
	if err := l.Validate(); err != nil {
		return layout.Layout{}, err
	}

	return l.Clone(), nil
}

// InputCompression resolves the input compression for the given file path.
func (c *Config) InputCompression(path string) (format.CompressionType, error) {
	if c.Input.Compression == AutoCompression {
		return format.CompressionFromExtension(path), nil
	}

	return format.ParseCompression(c.Input.Compression)
}

// FitOptions converts the analysis section into regression options.
func (c *Config) FitOptions() ([]regression.AnalyzeOption, error) {
	var opts []regression.AnalyzeOption

	a := c.Analysis
	if a.Start != nil || a.End != nil {
		start, end := math.Inf(-1), math.Inf(1)
		if a.Start != nil {
			start = *a.Start
		}
		if a.End != nil {
			end = *a.End
		}
		if math.IsNaN(start) || math.IsNaN(end) || end <= start {
			return nil, fmt.Errorf("%w: analysis window [%g, %g]", errs.ErrInvalidConfig, start, end)
		}
		opts = append(opts, regression.WithTimeWindow(start, end))
	}
	if len(a.Models) > 0 {
		opts = append(opts, regression.WithModels(a.Models...))
	}

	return opts, nil
}

// LogLevel parses the logging level.
func (c *Config) LogLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return level, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}

	return level, nil
}
