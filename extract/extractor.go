package extract

import (
	"go.uber.org/zap"

	"github.com/arloliu/bkn/endian"
	"github.com/arloliu/bkn/internal/options"
	"github.com/arloliu/bkn/layout"
)

// Extractor decodes method records according to one layout.
//
// An Extractor is immutable after construction and safe for concurrent use.
type Extractor struct {
	layout  layout.Layout
	engine  endian.EndianEngine
	workers int
	sugar   *zap.SugaredLogger
}

// NewExtractor creates an extractor with the default layout, one worker and
// a no-op logger, then applies opts.
//
// Returns:
//   - *Extractor: The configured extractor
//   - error: The first option error (invalid layout, invalid worker count)
func NewExtractor(opts ...Option) (*Extractor, error) {
	cfg := &ExtractorConfig{
		layout:  layout.Default(),
		workers: 1,
		logger:  zap.NewNop(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Extractor{
		layout:  cfg.layout.Clone(),
		engine:  cfg.layout.Engine(),
		workers: cfg.workers,
		sugar:   cfg.logger.Sugar(),
	}, nil
}

// Layout returns a copy of the layout used by the extractor.
func (e *Extractor) Layout() layout.Layout {
	return e.layout.Clone()
}

// Workers returns the number of decoding goroutines.
func (e *Extractor) Workers() int {
	return e.workers
}
