package extract

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/bkn/errs"
	"github.com/arloliu/bkn/internal/options"
	"github.com/arloliu/bkn/layout"
)

// ExtractorConfig holds the settings applied by Option values.
type ExtractorConfig struct {
	layout  layout.Layout
	workers int
	logger  *zap.Logger
}

// Option represents a functional option for configuring the Extractor.
type Option = options.Option[*ExtractorConfig]

// WithLayout sets the record layout. The default is layout.Default().
func WithLayout(l layout.Layout) Option {
	return options.New(func(c *ExtractorConfig) error {
		if err := l.Validate(); err != nil {
			return err
		}
		c.layout = l

		return nil
	})
}

// WithWorkers sets the number of goroutines decoding records. 1 disables parallelism.
func WithWorkers(n int) Option {
	return options.New(func(c *ExtractorConfig) error {
		if n < 1 {
			return fmt.Errorf("%w: workers must be >= 1, got %d", errs.ErrInvalidConfig, n)
		}
		c.workers = n

		return nil
	})
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(c *ExtractorConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}
