package regression

import (
	"fmt"
	"math"

	"github.com/arloliu/bkn/errs"
	"github.com/arloliu/bkn/internal/options"
)

// AnalyzeConfig holds configuration for curve fitting.
type AnalyzeConfig struct {
	// Models lists the candidate models in tie-break order.
	Models []ModelType
	// Start and End bound the fitted time range, inclusive.
	Start float64
	End   float64
}

// defaultAnalyzeConfig fits every model over the whole run.
func defaultAnalyzeConfig() AnalyzeConfig {
	return AnalyzeConfig{
		Models: allModelTypes(),
		Start:  math.Inf(-1),
		End:    math.Inf(1),
	}
}

// AnalyzeOption is a functional option for AnalyzeConfig.
type AnalyzeOption = options.Option[*AnalyzeConfig]

// WithModels restricts the candidate models. Linear is always fitted to
// compute the rate, but only ranked when listed.
func WithModels(models ...ModelType) AnalyzeOption {
	return options.New(func(cfg *AnalyzeConfig) error {
		if len(models) == 0 {
			return fmt.Errorf("%w: no regression models selected", errs.ErrInvalidConfig)
		}
		for _, m := range models {
			if _, ok := modelTypeNames[m]; !ok {
				return fmt.Errorf("%w: regression model %d", errs.ErrInvalidConfig, m)
			}
		}
		cfg.Models = models

		return nil
	})
}

// WithTimeWindow only fits points with start <= time <= end.
func WithTimeWindow(start, end float64) AnalyzeOption {
	return options.New(func(cfg *AnalyzeConfig) error {
		if math.IsNaN(start) || math.IsNaN(end) || end <= start {
			return fmt.Errorf("%w: time window [%g, %g]", errs.ErrInvalidConfig, start, end)
		}
		cfg.Start = start
		cfg.End = end

		return nil
	})
}
