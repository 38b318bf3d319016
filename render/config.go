package render

import (
	"fmt"

	"github.com/arloliu/bkn/errs"
	"github.com/arloliu/bkn/format"
	"github.com/arloliu/bkn/internal/options"
	"github.com/arloliu/bkn/regression"
)

// RendererConfig holds the settings applied by Option values.
type RendererConfig struct {
	metadataMode format.MetadataMode
	pointOrder   format.PointOrder
	checksum     bool
	indent       bool
	fit          bool
	fitOptions   []regression.AnalyzeOption
}

// Option represents a functional option for configuring JSON rendering.
type Option = options.Option[*RendererConfig]

func defaultConfig() *RendererConfig {
	return &RendererConfig{
		metadataMode: format.MetadataTyped,
		pointOrder:   format.TimeFirst,
	}
}

// WithMetadataMode selects typed {name, value, units} objects or plain field texts.
func WithMetadataMode(mode format.MetadataMode) Option {
	return options.New(func(c *RendererConfig) error {
		if mode != format.MetadataTyped && mode != format.MetadataPlain {
			return fmt.Errorf("%w: metadata mode %d", errs.ErrInvalidConfig, mode)
		}
		c.metadataMode = mode

		return nil
	})
}

// WithPointOrder sets the key order of point objects. It should match the
// storage order of the layout the records were extracted with.
func WithPointOrder(order format.PointOrder) Option {
	return options.New(func(c *RendererConfig) error {
		if order != format.TimeFirst && order != format.AbsorbanceFirst {
			return fmt.Errorf("%w: point order %d", errs.ErrInvalidConfig, order)
		}
		c.pointOrder = order

		return nil
	})
}

// WithChecksum adds the record checksum as a 16 digit hex string.
func WithChecksum(enabled bool) Option {
	return options.NoError(func(c *RendererConfig) {
		c.checksum = enabled
	})
}

// WithIndent pretty-prints the document with two space indentation.
func WithIndent(enabled bool) Option {
	return options.NoError(func(c *RendererConfig) {
		c.indent = enabled
	})
}

// WithFit adds a "fit" object with the best curve fit and the linear rate of
// each record. Records with fewer than two usable points get no fit.
func WithFit(opts ...regression.AnalyzeOption) Option {
	return options.NoError(func(c *RendererConfig) {
		c.fit = true
		c.fitOptions = opts
	})
}
