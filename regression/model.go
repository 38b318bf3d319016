package regression

import "fmt"

// Model is one fitted candidate.
type Model struct {
	// Type is the model type.
	Type ModelType
	// Coefficients contains the fitted coefficients, see Estimator.Coefficients.
	Coefficients []float64
	// RSquared is the coefficient of determination.
	RSquared float64
	// RMSE is the root mean square error in absorbance units.
	RMSE float64
	// Formula is a human-readable representation of the model.
	Formula string
	// Estimator evaluates the model at a given time.
	Estimator Estimator
}

// String returns a string representation of the model.
func (m *Model) String() string {
	return fmt.Sprintf("Model{Type: %s, R²: %.4f, RMSE: %.4f, Formula: %s}",
		m.Type, m.RSquared, m.RMSE, m.Formula)
}

// Result represents the result of fitting one run.
type Result struct {
	// BestFit is the candidate with the highest R².
	BestFit *Model
	// AllModels contains the fitted candidates ranked by R² (best first).
	AllModels []*Model
	// Rate is the slope of the linear fit, in absorbance per time unit.
	Rate float64
	// Points is the number of points inside the time window.
	Points int
}

// Model returns the fitted candidate of the given type, or nil if it was
// not selected or its domain did not cover the data.
func (r *Result) Model(t ModelType) *Model {
	for _, m := range r.AllModels {
		if m.Type == t {
			return m
		}
	}

	return nil
}

// String returns a string representation of the result.
func (r *Result) String() string {
	if r.BestFit == nil {
		return "Result{BestFit: nil}"
	}

	return fmt.Sprintf("Result{BestFit: %s, Rate: %.6f, Points: %d, TotalModels: %d}",
		r.BestFit, r.Rate, r.Points, len(r.AllModels))
}
