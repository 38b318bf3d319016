// Package regression fits absorbance-versus-time curves of kinetics runs.
//
// Each extracted record is a time series of absorbance readings. Fitting a
// model to it yields the reaction rate that kinetics software reports next
// to the raw data, and R² tells how well the run follows the model.
//
// # Usage
//
//	result, err := regression.Analyze(rec.Points,
//	    regression.WithTimeWindow(0, 30), // initial rate over the first 30 time units
//	)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("rate %.6f A/unit, best model %s (R²=%.4f)\n",
//	    result.Rate, result.BestFit.Type, result.BestFit.RSquared)
//
// # Model Types
//
//   - Linear: A = a + b*t (zero order; b is the rate)
//   - Polynomial: A = a + b*t + c*t²
//   - Exponential: A = a * e^(b*t) (first order; -b is the rate constant)
//   - Logarithmic: A = a + b*ln(t)
//   - Power: A = a * t^b
//
// Models whose domain does not cover the data are skipped: exponential and
// power need positive absorbance, logarithmic and power need positive time,
// polynomial needs three points. The best fit is the candidate with the
// highest R²; ties keep the order above.
package regression
