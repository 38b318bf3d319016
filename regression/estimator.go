package regression

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/arloliu/bkn/errs"
)

// ModelType represents the type of regression model.
type ModelType int

const (
	// ModelTypeLinear represents the linear model: A = a + b*t
	ModelTypeLinear ModelType = iota
	// ModelTypePolynomial represents the quadratic model: A = a + b*t + c*t²
	ModelTypePolynomial
	// ModelTypeExponential represents the exponential model: A = a * e^(b*t)
	ModelTypeExponential
	// ModelTypeLogarithmic represents the logarithmic model: A = a + b*ln(t)
	ModelTypeLogarithmic
	// ModelTypePower represents the power model: A = a * t^b
	ModelTypePower
)

// modelTypeNames maps ModelType to their string representations.
var modelTypeNames = map[ModelType]string{
	ModelTypeLinear:      "linear",
	ModelTypePolynomial:  "polynomial",
	ModelTypeExponential: "exponential",
	ModelTypeLogarithmic: "logarithmic",
	ModelTypePower:       "power",
}

func allModelTypes() []ModelType {
	return []ModelType{
		ModelTypeLinear,
		ModelTypePolynomial,
		ModelTypeExponential,
		ModelTypeLogarithmic,
		ModelTypePower,
	}
}

// String returns the string representation of the model type.
func (mt ModelType) String() string {
	if name, exists := modelTypeNames[mt]; exists {
		return name
	}

	return "unknown"
}

// ParseModelType returns the ModelType for a case-insensitive name.
func ParseModelType(name string) (ModelType, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for mt, n := range modelTypeNames {
		if n == want {
			return mt, nil
		}
	}

	supported := make([]string, 0, len(modelTypeNames))
	for _, n := range modelTypeNames {
		supported = append(supported, n)
	}
	slices.Sort(supported)

	return ModelType(-1), fmt.Errorf("%w: unknown model type %q, supported types: %s",
		errs.ErrInvalidConfig, name, strings.Join(supported, ", "))
}

func (mt *ModelType) UnmarshalText(text []byte) error {
	v, err := ParseModelType(string(text))
	if err != nil {
		return err
	}
	*mt = v

	return nil
}

func (mt ModelType) MarshalText() ([]byte, error) {
	return []byte(mt.String()), nil
}

// newEmptyEstimator creates an empty estimator for the given ModelType.
func newEmptyEstimator(modelType ModelType) Estimator {
	switch modelType {
	case ModelTypeLinear:
		return NewLinearEstimator(0, 0)
	case ModelTypePolynomial:
		return NewPolynomialEstimator(0, 0, 0)
	case ModelTypeExponential:
		return NewExponentialEstimator(0, 0)
	case ModelTypeLogarithmic:
		return NewLogarithmicEstimator(0, 0)
	case ModelTypePower:
		return NewPowerEstimator(0, 0)
	default:
		return nil
	}
}

// Estimator evaluates a fitted absorbance curve.
type Estimator interface {
	// Estimate returns the absorbance at time t, or NaN outside the model's domain.
	Estimate(t float64) float64
	// Type returns the model type.
	Type() ModelType
	// Coefficients returns the model coefficients.
	Coefficients() []float64
	// SetCoefficients updates the coefficients of the model.
	// Polynomial expects 3 coefficients, every other model 2.
	SetCoefficients(coeffs []float64) error
}

// LinearEstimator implements the linear model: A = a + b*t
type LinearEstimator struct {
	a, b   float64
	coeffs []float64 // Cached coefficient slice to avoid allocations
}

// NewLinearEstimator creates a new linear estimator with the given coefficients.
func NewLinearEstimator(a, b float64) *LinearEstimator {
	return &LinearEstimator{a: a, b: b, coeffs: make([]float64, 2)}
}

// Estimate calculates A = a + b*t.
func (l *LinearEstimator) Estimate(t float64) float64 {
	return l.a + l.b*t
}

// Type returns the model type.
func (l *LinearEstimator) Type() ModelType {
	return ModelTypeLinear
}

// Coefficients returns the model coefficients [a, b].
func (l *LinearEstimator) Coefficients() []float64 {
	l.coeffs[0] = l.a
	l.coeffs[1] = l.b

	return l.coeffs
}

// SetCoefficients expects exactly 2 coefficients: [a, b].
func (l *LinearEstimator) SetCoefficients(coeffs []float64) error {
	if len(coeffs) != 2 {
		return fmt.Errorf("%w: linear model expects exactly 2 coefficients, got %d", errs.ErrInvalidConfig, len(coeffs))
	}
	l.a, l.b = coeffs[0], coeffs[1]

	return nil
}

// PolynomialEstimator implements the quadratic model: A = a + b*t + c*t²
type PolynomialEstimator struct {
	a, b, c float64
	coeffs  []float64 // Cached coefficient slice to avoid allocations
}

// NewPolynomialEstimator creates a new polynomial estimator with the given coefficients.
func NewPolynomialEstimator(a, b, c float64) *PolynomialEstimator {
	return &PolynomialEstimator{a: a, b: b, c: c, coeffs: make([]float64, 3)}
}

// Estimate calculates A = a + b*t + c*t².
func (p *PolynomialEstimator) Estimate(t float64) float64 {
	return p.a + p.b*t + p.c*t*t
}

// Type returns the model type.
func (p *PolynomialEstimator) Type() ModelType {
	return ModelTypePolynomial
}

// Coefficients returns the model coefficients [a, b, c].
func (p *PolynomialEstimator) Coefficients() []float64 {
	p.coeffs[0] = p.a
	p.coeffs[1] = p.b
	p.coeffs[2] = p.c

	return p.coeffs
}

// SetCoefficients expects exactly 3 coefficients: [a, b, c].
func (p *PolynomialEstimator) SetCoefficients(coeffs []float64) error {
	if len(coeffs) != 3 {
		return fmt.Errorf("%w: polynomial model expects exactly 3 coefficients, got %d", errs.ErrInvalidConfig, len(coeffs))
	}
	p.a, p.b, p.c = coeffs[0], coeffs[1], coeffs[2]

	return nil
}

// ExponentialEstimator implements the exponential model: A = a * e^(b*t)
type ExponentialEstimator struct {
	a, b   float64
	coeffs []float64 // Cached coefficient slice to avoid allocations
}

// NewExponentialEstimator creates a new exponential estimator with the given coefficients.
func NewExponentialEstimator(a, b float64) *ExponentialEstimator {
	return &ExponentialEstimator{a: a, b: b, coeffs: make([]float64, 2)}
}

// Estimate calculates A = a * e^(b*t).
func (e *ExponentialEstimator) Estimate(t float64) float64 {
	return e.a * math.Exp(e.b*t)
}

// Type returns the model type.
func (e *ExponentialEstimator) Type() ModelType {
	return ModelTypeExponential
}

// Coefficients returns the model coefficients [a, b].
func (e *ExponentialEstimator) Coefficients() []float64 {
	e.coeffs[0] = e.a
	e.coeffs[1] = e.b

	return e.coeffs
}

// SetCoefficients expects exactly 2 coefficients: [a, b].
func (e *ExponentialEstimator) SetCoefficients(coeffs []float64) error {
	if len(coeffs) != 2 {
		return fmt.Errorf("%w: exponential model expects exactly 2 coefficients, got %d", errs.ErrInvalidConfig, len(coeffs))
	}
	e.a, e.b = coeffs[0], coeffs[1]

	return nil
}

// LogarithmicEstimator implements the logarithmic model: A = a + b*ln(t)
type LogarithmicEstimator struct {
	a, b   float64
	coeffs []float64 // Cached coefficient slice to avoid allocations
}

// NewLogarithmicEstimator creates a new logarithmic estimator with the given coefficients.
func NewLogarithmicEstimator(a, b float64) *LogarithmicEstimator {
	return &LogarithmicEstimator{a: a, b: b, coeffs: make([]float64, 2)}
}

// Estimate calculates A = a + b*ln(t); NaN for t <= 0.
func (l *LogarithmicEstimator) Estimate(t float64) float64 {
	if t <= 0 {
		return math.NaN()
	}

	return l.a + l.b*math.Log(t)
}

// Type returns the model type.
func (l *LogarithmicEstimator) Type() ModelType {
	return ModelTypeLogarithmic
}

// Coefficients returns the model coefficients [a, b].
func (l *LogarithmicEstimator) Coefficients() []float64 {
	l.coeffs[0] = l.a
	l.coeffs[1] = l.b

	return l.coeffs
}

// SetCoefficients expects exactly 2 coefficients: [a, b].
func (l *LogarithmicEstimator) SetCoefficients(coeffs []float64) error {
	if len(coeffs) != 2 {
		return fmt.Errorf("%w: logarithmic model expects exactly 2 coefficients, got %d", errs.ErrInvalidConfig, len(coeffs))
	}
	l.a, l.b = coeffs[0], coeffs[1]

	return nil
}

// PowerEstimator implements the power model: A = a * t^b
type PowerEstimator struct {
	a, b   float64
	coeffs []float64 // Cached coefficient slice to avoid allocations
}

// NewPowerEstimator creates a new power estimator with the given coefficients.
func NewPowerEstimator(a, b float64) *PowerEstimator {
	return &PowerEstimator{a: a, b: b, coeffs: make([]float64, 2)}
}

// Estimate calculates A = a * t^b; NaN for t <= 0.
func (p *PowerEstimator) Estimate(t float64) float64 {
	if t <= 0 {
		return math.NaN()
	}

	return p.a * math.Pow(t, p.b)
}

// Type returns the model type.
func (p *PowerEstimator) Type() ModelType {
	return ModelTypePower
}

// Coefficients returns the model coefficients [a, b].
func (p *PowerEstimator) Coefficients() []float64 {
	p.coeffs[0] = p.a
	p.coeffs[1] = p.b

	return p.coeffs
}

// SetCoefficients expects exactly 2 coefficients: [a, b].
func (p *PowerEstimator) SetCoefficients(coeffs []float64) error {
	if len(coeffs) != 2 {
		return fmt.Errorf("%w: power model expects exactly 2 coefficients, got %d", errs.ErrInvalidConfig, len(coeffs))
	}
	p.a, p.b = coeffs[0], coeffs[1]

	return nil
}

// NewEstimator creates an estimator by model name and coefficients.
//
// Parameters:
//   - name: The model name (case-insensitive): linear, polynomial, exponential, logarithmic or power
//   - coeffs: The model coefficients, 3 for polynomial and 2 otherwise
//
// Returns:
//   - Estimator: The created estimator instance
//   - error: ErrInvalidConfig for an unknown name or a wrong coefficient count
func NewEstimator(name string, coeffs []float64) (Estimator, error) {
	modelType, err := ParseModelType(name)
	if err != nil {
		return nil, err
	}

	estimator := newEmptyEstimator(modelType)
	if err := estimator.SetCoefficients(coeffs); err != nil {
		return nil, err
	}

	return estimator, nil
}
