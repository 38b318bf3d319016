// Package render writes extracted record sets as JSON.
//
// The output is an array with one object per record:
//
//	[
//	  {
//	    "points": [{"time": 1.5000000000, "absorbance": 0.1000000015}],
//	    "meta": [{"name": "Wavelength", "value": "340.0", "units": "nm"}],
//	    "checksum": "9f3a6d2c11b04e7a"
//	  }
//	]
//
// Numbers carry exactly ten fractional digits of the float32 value widened to
// float64. The "meta" array becomes a flat "metadata" array of field texts in
// plain mode, "checksum" is only present when enabled, and "fit" holds the
// best regression model and the linear rate when curve fitting is enabled.
//
// The whole document is built in a pooled buffer before anything reaches the
// writer, so a failed render never leaves partial output behind.
package render
