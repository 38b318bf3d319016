package regression

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/bkn/errs"
	"github.com/arloliu/bkn/internal/options"
	"github.com/arloliu/bkn/record"
)

// minPoints is the smallest series a two-coefficient model can be fitted to.
const minPoints = 2

// Analyze fits the candidate models to one run's absorbance curve.
//
// Parameters:
//   - points: The run's points; only those inside the time window are used
//   - opts: Candidate models and time window
//
// Returns:
//   - *Result: Ranked candidates, best fit and linear rate
//   - error: ErrInvalidConfig for bad options, ErrInsufficientData when fewer
//     than two usable points remain or no candidate could be fitted
func Analyze(points []record.Point, opts ...AnalyzeOption) (*Result, error) {
	cfg := defaultAnalyzeConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	t, a := windowed(points, cfg.Start, cfg.End)
	if len(t) < minPoints {
		return nil, fmt.Errorf("%w: %d points in time window, need %d", errs.ErrInsufficientData, len(t), minPoints)
	}

	linear := fitLinear(t, a)
	if linear == nil {
		return nil, fmt.Errorf("%w: all %d points share one time value", errs.ErrInsufficientData, len(t))
	}

	models := make([]*Model, 0, len(cfg.Models))
	for _, mt := range cfg.Models {
		var m *Model
		switch mt {
		case ModelTypeLinear:
			m = linear
		case ModelTypePolynomial:
			m = fitPolynomial(t, a)
		case ModelTypeExponential:
			m = fitExponential(t, a)
		case ModelTypeLogarithmic:
			m = fitLogarithmic(t, a)
		case ModelTypePower:
			m = fitPower(t, a)
		}
		if m != nil {
			models = append(models, m)
		}
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("%w: no selected model covers the data", errs.ErrInsufficientData)
	}

	// Stable sort keeps the candidate order for equal R².
	slices.SortStableFunc(models, func(x, y *Model) int {
		switch {
		case x.RSquared > y.RSquared:
			return -1
		case x.RSquared < y.RSquared:
			return 1
		default:
			return 0
		}
	})

	return &Result{
		BestFit:   models[0],
		AllModels: models,
		Rate:      linear.Coefficients[1],
		Points:    len(t),
	}, nil
}

// AnalyzeEach fits every record of set separately.
//
// Records without enough data get a nil entry; only option errors are returned.
func AnalyzeEach(set record.RecordSet, opts ...AnalyzeOption) ([]*Result, error) {
	cfg := defaultAnalyzeConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	results := make([]*Result, len(set))
	for i, rec := range set {
		result, err := Analyze(rec.Points, opts...)
		if err != nil {
			continue
		}
		results[i] = result
	}

	return results, nil
}

// windowed widens the points inside [start, end] to float64.
func windowed(points []record.Point, start, end float64) (t, a []float64) {
	t = make([]float64, 0, len(points))
	a = make([]float64, 0, len(points))
	for _, p := range points {
		ti, ai := float64(p.Time), float64(p.Absorbance)
		if math.IsNaN(ti) || math.IsNaN(ai) || math.IsInf(ti, 0) || math.IsInf(ai, 0) {
			continue
		}
		if ti < start || ti > end {
			continue
		}
		t = append(t, ti)
		a = append(a, ai)
	}

	return t, a
}

// leastSquares fits y = a + b*x. ok is false when x has no spread.
func leastSquares(x, y []float64) (a, b float64, ok bool) {
	n := float64(len(x))

	var sumX, sumY, sumXY, sumX2 float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
	}

	meanX := sumX / n
	meanY := sumY / n
	denom := sumX2 - n*meanX*meanX
	if denom == 0 || math.Abs(denom) < 1e-12*math.Max(1, sumX2) {
		return 0, 0, false
	}

	b = (sumXY - n*meanX*meanY) / denom
	a = meanY - b*meanX

	return a, b, true
}

// newModel evaluates est over t and builds the Model, or returns nil if any
// coefficient or statistic is not finite.
func newModel(est Estimator, t, observed []float64, formula string) *Model {
	coeffs := slices.Clone(est.Coefficients())
	for _, c := range coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil
		}
	}

	predicted := make([]float64, len(t))
	for i, ti := range t {
		predicted[i] = est.Estimate(ti)
	}

	r2 := calculateRSquared(observed, predicted)
	rmse := calculateRMSE(observed, predicted)
	if math.IsNaN(r2) || math.IsNaN(rmse) || math.IsInf(rmse, 0) {
		return nil
	}

	return &Model{
		Type:         est.Type(),
		Coefficients: coeffs,
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      formula,
		Estimator:    est,
	}
}

// fitLinear fits A = a + b*t.
func fitLinear(t, y []float64) *Model {
	a, b, ok := leastSquares(t, y)
	if !ok {
		return nil
	}

	return newModel(NewLinearEstimator(a, b), t, y, fmt.Sprintf("A = %.6f + %.6f*t", a, b))
}

// fitExponential fits ln(A) = ln(a) + b*t, which needs A > 0.
func fitExponential(t, y []float64) *Model {
	logY := make([]float64, len(y))
	for i, yi := range y {
		if yi <= 0 {
			return nil
		}
		logY[i] = math.Log(yi)
	}

	logA, b, ok := leastSquares(t, logY)
	if !ok {
		return nil
	}
	a := math.Exp(logA)

	return newModel(NewExponentialEstimator(a, b), t, y, fmt.Sprintf("A = %.6f * e^(%.6f*t)", a, b))
}

// fitLogarithmic fits A = a + b*ln(t), which needs t > 0.
func fitLogarithmic(t, y []float64) *Model {
	logT := make([]float64, len(t))
	for i, ti := range t {
		if ti <= 0 {
			return nil
		}
		logT[i] = math.Log(ti)
	}

	a, b, ok := leastSquares(logT, y)
	if !ok {
		return nil
	}

	return newModel(NewLogarithmicEstimator(a, b), t, y, fmt.Sprintf("A = %.6f + %.6f*ln(t)", a, b))
}

// fitPower fits ln(A) = ln(a) + b*ln(t), which needs t > 0 and A > 0.
func fitPower(t, y []float64) *Model {
	logT := make([]float64, len(t))
	logY := make([]float64, len(y))
	for i := range t {
		if t[i] <= 0 || y[i] <= 0 {
			return nil
		}
		logT[i] = math.Log(t[i])
		logY[i] = math.Log(y[i])
	}

	logA, b, ok := leastSquares(logT, logY)
	if !ok {
		return nil
	}
	a := math.Exp(logA)

	return newModel(NewPowerEstimator(a, b), t, y, fmt.Sprintf("A = %.6f * t^%.6f", a, b))
}

// fitPolynomial fits A = a + b*t + c*t² through the normal equations.
//
//	[n    Σt   Σt²] [a]   [ΣA]
//	[Σt   Σt²  Σt³] [b] = [ΣtA]
//	[Σt²  Σt³  Σt⁴] [c]   [Σt²A]
func fitPolynomial(t, y []float64) *Model {
	if len(t) < 3 {
		return nil
	}

	n := float64(len(t))
	var sumX, sumX2, sumX3, sumX4, sumY, sumXY, sumX2Y float64
	for i := range t {
		xi := t[i]
		xi2 := xi * xi
		yi := y[i]

		sumX += xi
		sumX2 += xi2
		sumX3 += xi2 * xi
		sumX4 += xi2 * xi2
		sumY += yi
		sumXY += xi * yi
		sumX2Y += xi2 * yi
	}

	// Cramer's rule
	det := n*sumX2*sumX4 + sumX*sumX3*sumX2 + sumX2*sumX*sumX3 -
		(sumX2*sumX2*sumX2 + sumX*sumX*sumX4 + n*sumX3*sumX3)
	if math.Abs(det) < 1e-10 {
		return nil
	}

	detA := sumY*sumX2*sumX4 + sumX*sumX3*sumX2Y + sumX2*sumXY*sumX3 -
		(sumX2*sumX2*sumX2Y + sumX*sumXY*sumX4 + sumY*sumX3*sumX3)
	detB := n*sumXY*sumX4 + sumY*sumX3*sumX2 + sumX2*sumX*sumX2Y -
		(sumX2*sumXY*sumX2 + sumY*sumX*sumX4 + n*sumX3*sumX2Y)
	detC := n*sumX2*sumX2Y + sumX*sumXY*sumX2 + sumY*sumX*sumX3 -
		(sumY*sumX2*sumX2 + sumX*sumX*sumX2Y + n*sumXY*sumX3)

	a, b, c := detA/det, detB/det, detC/det

	return newModel(NewPolynomialEstimator(a, b, c), t, y, fmt.Sprintf("A = %.6f + %.6f*t + %.6f*t²", a, b, c))
}

// calculateRSquared calculates the coefficient of determination.
// A constant series has no variance to explain and yields 0.
func calculateRSquared(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	mean := calculateMean(observed)
	ssTot := 0.0
	ssRes := 0.0
	for i := range observed {
		ssTot += (observed[i] - mean) * (observed[i] - mean)
		ssRes += (observed[i] - predicted[i]) * (observed[i] - predicted[i])
	}

	if ssTot == 0 {
		return 0
	}

	return 1.0 - (ssRes / ssTot)
}

// calculateRMSE calculates the root mean square error.
func calculateRMSE(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	sumSq := 0.0
	for i := range observed {
		diff := observed[i] - predicted[i]
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq / float64(len(observed)))
}

func calculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
