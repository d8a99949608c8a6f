// Package ets implements exponential smoothing forecasting models.
//
// Three variants are provided:
//   - SES: simple exponential smoothing, a level with a flat forecast
//   - Holt: linear trend, optionally damped by phi
//   - HoltWinters: linear trend with additive seasonality of period m
//
// Every parameter is a Param that is either Fixed by the caller or Free.
// Fit estimates the free ones by minimising the sum of squared one-step
// errors inside the admissible box and returns a new model; the input model
// is never modified.
//
// # Basic Usage
//
//	model, err := ets.NewHolt(series, 12, ets.HoltConfig{Damped: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fitted, err := ets.Fit(model)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	forecasts, _ := ets.Predict(fitted)
//	pi, _ := ets.Intervals(fitted, []float64{80, 95})
//
// # Fixed Parameters
//
// Pin a parameter to skip its estimation:
//
//	model, _ := ets.NewSES(series, 6, ets.SESConfig{Alpha: ets.Fixed(0.3)})
//
// A model with every parameter fixed can be run directly:
//
//	r, _ := ets.Recurse(model) // r.Values has len(series)+h entries
//
// # Seasonal Models
//
// The initial seasonal vector is required. SeasonalSeed derives one from a
// classical decomposition:
//
//	seed, _ := ets.SeasonalSeed(series, 12)
//	model, _ := ets.NewHoltWinters(series, 24, ets.HoltWintersConfig{
//	    Period:     12,
//	    InitSeason: seed,
//	})
//
// # Diagnostics
//
// Fitter reports advisories and, when Verbose, each objective evaluation
// through a zap logger:
//
//	f := ets.NewFitter()
//	f.Logger = logger
//	fitted, _ := ets.FitWith(f, model)
//
//	summary, _ := ets.Summarize(fitted)
//	fmt.Printf("AICc: %.2f, Ljung-Box p: %.3f\n", summary.AICc, summary.LjungBox.PValue)
package ets
