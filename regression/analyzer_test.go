package regression

import (
	"errors"
	"math"
	"testing"

	"github.com/arloliu/bkn/errs"
	"github.com/arloliu/bkn/record"
)

func series(n int, fn func(t float64) float64) []record.Point {
	points := make([]record.Point, n)
	for i := range points {
		t := float64(i)
		points[i] = record.Point{Time: float32(t), Absorbance: float32(fn(t))}
	}

	return points
}

func TestAnalyze_LinearRun(t *testing.T) {
	points := series(10, func(t float64) float64 { return 0.5 + 0.25*t })

	result, err := Analyze(points)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if math.Abs(result.Rate-0.25) > 1e-9 {
		t.Errorf("Rate = %f, expected 0.25", result.Rate)
	}
	if result.Points != 10 {
		t.Errorf("Points = %d, expected 10", result.Points)
	}

	linear := result.Model(ModelTypeLinear)
	if linear == nil {
		t.Fatal("linear model missing")
	}
	if math.Abs(linear.RSquared-1) > 1e-9 {
		t.Errorf("linear R² = %f, expected 1", linear.RSquared)
	}
	if math.Abs(linear.Coefficients[0]-0.5) > 1e-9 {
		t.Errorf("intercept = %f, expected 0.5", linear.Coefficients[0])
	}

	// t=0 excludes logarithmic and power
	if result.Model(ModelTypeLogarithmic) != nil || result.Model(ModelTypePower) != nil {
		t.Error("models needing t > 0 must be skipped for a run starting at t=0")
	}

	for i := 1; i < len(result.AllModels); i++ {
		if result.AllModels[i-1].RSquared < result.AllModels[i].RSquared {
			t.Errorf("models not sorted by R² at %d", i)
		}
	}
	if result.BestFit != result.AllModels[0] {
		t.Error("BestFit should be the first model in AllModels")
	}
}

func TestAnalyze_FirstOrderDecay(t *testing.T) {
	points := series(20, func(t float64) float64 { return 2.0 * math.Exp(-0.1*t) })

	result, err := Analyze(points, WithModels(ModelTypeExponential, ModelTypeLinear))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.BestFit.Type != ModelTypeExponential {
		t.Fatalf("BestFit = %s, expected exponential", result.BestFit.Type)
	}
	if k := result.BestFit.Coefficients[1]; math.Abs(k+0.1) > 1e-5 {
		t.Errorf("rate constant = %f, expected -0.1", k)
	}
	if math.Abs(result.BestFit.Coefficients[0]-2.0) > 1e-5 {
		t.Errorf("amplitude = %f, expected 2.0", result.BestFit.Coefficients[0])
	}
	if result.Rate >= 0 {
		t.Errorf("decay should have a negative linear rate, got %f", result.Rate)
	}
	if len(result.AllModels) != 2 {
		t.Errorf("expected 2 candidates, got %d", len(result.AllModels))
	}
}

func TestAnalyze_Quadratic(t *testing.T) {
	points := series(10, func(t float64) float64 { return 1 + 0.5*t + 0.25*t*t })

	result, err := Analyze(points)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	poly := result.Model(ModelTypePolynomial)
	if poly == nil {
		t.Fatal("polynomial model missing")
	}
	want := []float64{1, 0.5, 0.25}
	for i, c := range poly.Coefficients {
		if math.Abs(c-want[i]) > 1e-6 {
			t.Errorf("coefficient %d = %f, expected %f", i, c, want[i])
		}
	}
	if result.BestFit.Type != ModelTypePolynomial {
		t.Errorf("BestFit = %s, expected polynomial", result.BestFit.Type)
	}
}

func TestAnalyze_PositiveTimeModels(t *testing.T) {
	points := make([]record.Point, 10)
	for i := range points {
		ti := float64(i + 1)
		points[i] = record.Point{Time: float32(ti), Absorbance: float32(3 * math.Pow(ti, 0.5))}
	}

	result, err := Analyze(points)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.BestFit.Type != ModelTypePower {
		t.Errorf("BestFit = %s, expected power", result.BestFit.Type)
	}
	if result.Model(ModelTypeLogarithmic) == nil {
		t.Error("logarithmic model should be fitted for t > 0")
	}
}

func TestAnalyze_TimeWindow(t *testing.T) {
	// linear for t <= 4, flat afterwards
	points := series(12, func(t float64) float64 { return math.Min(0.1*t, 0.4) })

	result, err := Analyze(points, WithTimeWindow(0, 4))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.Points != 5 {
		t.Errorf("Points = %d, expected 5", result.Points)
	}
	if math.Abs(result.Rate-0.1) > 1e-6 {
		t.Errorf("initial rate = %f, expected 0.1", result.Rate)
	}
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name   string
		points []record.Point
		opts   []AnalyzeOption
		target error
	}{
		{"no points", nil, nil, errs.ErrInsufficientData},
		{"single point", []record.Point{{Time: 1, Absorbance: 0.1}}, nil, errs.ErrInsufficientData},
		{"same time", []record.Point{{Time: 1, Absorbance: 0.1}, {Time: 1, Absorbance: 0.2}}, nil, errs.ErrInsufficientData},
		{"nan points", []record.Point{{Time: float32(math.NaN())}, {Time: 1}}, nil, errs.ErrInsufficientData},
		{"empty window", series(5, func(t float64) float64 { return t }), []AnalyzeOption{WithTimeWindow(10, 20)}, errs.ErrInsufficientData},
		{"no covering model", series(5, func(t float64) float64 { return t }), []AnalyzeOption{WithModels(ModelTypePower)}, errs.ErrInsufficientData},
		{"inverted window", series(5, func(t float64) float64 { return t }), []AnalyzeOption{WithTimeWindow(3, 1)}, errs.ErrInvalidConfig},
		{"no models", series(5, func(t float64) float64 { return t }), []AnalyzeOption{WithModels()}, errs.ErrInvalidConfig},
		{"unknown model", series(5, func(t float64) float64 { return t }), []AnalyzeOption{WithModels(ModelType(42))}, errs.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Analyze(tt.points, tt.opts...)
			if !errors.Is(err, tt.target) {
				t.Errorf("Analyze() error = %v, expected %v", err, tt.target)
			}
		})
	}
}

func TestAnalyze_ConstantRun(t *testing.T) {
	points := series(5, func(float64) float64 { return 0.3 })

	result, err := Analyze(points)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if math.Abs(result.Rate) > 1e-12 {
		t.Errorf("Rate = %g, expected 0", result.Rate)
	}
	if result.BestFit.Type != ModelTypeLinear {
		t.Errorf("ties should keep candidate order, got %s", result.BestFit.Type)
	}
}

func TestAnalyzeEach(t *testing.T) {
	set := record.RecordSet{
		{Points: series(5, func(t float64) float64 { return 0.2 * t })},
		{Points: []record.Point{{Time: 0, Absorbance: 1}}},
		{Points: series(5, func(t float64) float64 { return 1 - 0.1*t })},
	}

	results, err := AnalyzeEach(set)
	if err != nil {
		t.Fatalf("AnalyzeEach failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[1] != nil {
		t.Error("single point record should have no result")
	}
	if math.Abs(results[0].Rate-0.2) > 1e-6 || math.Abs(results[2].Rate+0.1) > 1e-6 {
		t.Errorf("rates = %f, %f", results[0].Rate, results[2].Rate)
	}

	if _, err := AnalyzeEach(set, WithModels()); !errors.Is(err, errs.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestEstimators(t *testing.T) {
	tests := []struct {
		name      string
		estimator Estimator
		at        float64
		expected  float64
		coeffs    int
	}{
		{"Linear", NewLinearEstimator(0.5, 0.25), 4, 1.5, 2},
		{"Polynomial", NewPolynomialEstimator(1, 0.5, 0.25), 2, 3, 3},
		{"Exponential", NewExponentialEstimator(2, -0.1), 10, 2 * math.Exp(-1), 2},
		{"Logarithmic", NewLogarithmicEstimator(5, 2), math.E, 7, 2},
		{"Power", NewPowerEstimator(3, 0.5), 4, 6, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if actual := tt.estimator.Estimate(tt.at); math.Abs(actual-tt.expected) > 1e-10 {
				t.Errorf("Estimate() = %f, expected %f", actual, tt.expected)
			}
			if got := len(tt.estimator.Coefficients()); got != tt.coeffs {
				t.Errorf("expected %d coefficients, got %d", tt.coeffs, got)
			}
			if err := tt.estimator.SetCoefficients(make([]float64, tt.coeffs+1)); !errors.Is(err, errs.ErrInvalidConfig) {
				t.Errorf("SetCoefficients with wrong count: %v", err)
			}
		})
	}

	if !math.IsNaN(NewLogarithmicEstimator(1, 1).Estimate(0)) {
		t.Error("LogarithmicEstimator should return NaN for t=0")
	}
	if !math.IsNaN(NewPowerEstimator(1, 1).Estimate(-1)) {
		t.Error("PowerEstimator should return NaN for negative t")
	}
}

func TestNewEstimator(t *testing.T) {
	est, err := NewEstimator("Exponential", []float64{2, -0.5})
	if err != nil {
		t.Fatalf("NewEstimator failed: %v", err)
	}
	if est.Type() != ModelTypeExponential {
		t.Errorf("Type() = %s, expected exponential", est.Type())
	}

	if _, err := NewEstimator("hyperbolic", []float64{1, 2}); !errors.Is(err, errs.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for unknown model, got %v", err)
	}
	if _, err := NewEstimator("polynomial", []float64{1, 2}); !errors.Is(err, errs.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for wrong coefficient count, got %v", err)
	}
}

func TestModelTypeText(t *testing.T) {
	tests := []struct {
		modelType ModelType
		expected  string
	}{
		{ModelTypeLinear, "linear"},
		{ModelTypePolynomial, "polynomial"},
		{ModelTypeExponential, "exponential"},
		{ModelTypeLogarithmic, "logarithmic"},
		{ModelTypePower, "power"},
		{ModelType(999), "unknown"},
	}

	for _, tt := range tests {
		if actual := tt.modelType.String(); actual != tt.expected {
			t.Errorf("ModelType.String() = %s, expected %s", actual, tt.expected)
		}
	}

	var mt ModelType
	if err := mt.UnmarshalText([]byte(" POWER ")); err != nil || mt != ModelTypePower {
		t.Errorf("UnmarshalText = %v, %v", mt, err)
	}
	if err := mt.UnmarshalText([]byte("cubic")); !errors.Is(err, errs.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func BenchmarkAnalyze(b *testing.B) {
	points := series(600, func(t float64) float64 { return 1.2 * math.Exp(-0.01*t) })

	b.ReportAllocs()
	for b.Loop() {
		_, _ = Analyze(points)
	}
}
