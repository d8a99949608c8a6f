// Package stats provides residual diagnostics, decomposition and distribution
// helpers for exponential smoothing and baseline forecasts.
//
// # Residual Diagnostics
//
// Test one-step residuals for leftover autocorrelation:
//
//	lb := stats.LjungBox(residuals, 10, nParams)
//	if lb.WhiteNoise(0.05) {
//	    // Residuals look like white noise
//	}
//
//	bp := stats.BoxPierce(residuals, 10, nParams)
//	dw, ok := stats.DurbinWatson(residuals)
//
// # Autocorrelation
//
//	acf := stats.ACF(residuals, 20)
//	res := stats.ACFWithConfidence(residuals, 20, 95)
//	significant := stats.SignificantLags(res.Values, res.ConfBounds)
//
// # Decomposition
//
// Classical decomposition provides seasonal indices, which can seed the
// initial season vector of a Holt-Winters model:
//
//	d, err := stats.Decompose(values, 12, stats.Additive)
//	// d.Indices, d.Trend, d.Seasonal, d.Residual
//
// # Normal Quantiles
//
//	z := stats.ZScore(95) // 1.959963...
package stats
