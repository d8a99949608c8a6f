// Package goets provides exponential smoothing and baseline time series forecasting.
//
// GoETS implements simple exponential smoothing, Holt's linear trend method
// (with optional damping) and the additive Holt-Winters method, together with
// the Mean, Naive and Seasonal Naive benchmarks. It follows the methodology
// from "Forecasting: Principles and Practice".
//
// # Features
//
//   - SES, Holt, damped Holt and additive Holt-Winters models
//   - Bounded parameter estimation of any subset of free parameters
//   - Prediction intervals for smoothing and baseline forecasts
//   - Information criteria and residual diagnostics (Ljung-Box, ACF)
//   - Classical decomposition for seeding seasonal states
//
// # Quick Start
//
//	series := timeseries.New(values)
//	model, _ := ets.NewHolt(series, 10, ets.HoltConfig{})
//	fitted, _ := ets.Fit(model)
//	forecasts, _ := ets.Predict(fitted)
//
// Compare against a benchmark:
//
//	naive, _ := baseline.NewNaive(series, 10, nil)
//
// # Packages
//
//   - ets: exponential smoothing models and fitting
//   - baseline: Mean, Naive and Seasonal Naive forecasts
//   - optim: bounded minimisers used by the fitter
//   - validate: input validation and error values
//   - stats: diagnostics, decomposition and normal quantiles
//   - timeseries: time series data structures and CSV I/O
//
// # References
//
//   - Hyndman, R.J., & Athanasopoulos, G. (2021). Forecasting: Principles and Practice
//   - Hyndman, R.J., Koehler, A.B., Ord, J.K., & Snyder, R.D. (2008). Forecasting with Exponential Smoothing
package goets
