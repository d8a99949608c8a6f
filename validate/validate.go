// Package validate implements the structural and parameter checks shared by
// the ets and baseline packages.
package validate

import (
	"errors"
	"fmt"
	"math"
)

// Bounds for smoothing and damping parameters.
const (
	SmoothingMin = 0.0
	SmoothingMax = 1.0

	// DampingMin and DampingMax bound a caller-supplied damping factor.
	DampingMin = 0.80
	DampingMax = 0.98

	// DampingFitMax is the upper bound used when the damping factor is estimated.
	DampingFitMax = 0.995
)

var (
	ErrEmptyInput                 = errors.New("empty input series")
	ErrInvalidHorizon             = errors.New("horizon must be positive")
	ErrParameterOutOfRange        = errors.New("parameter out of range")
	ErrMissingSeasonalPeriod      = errors.New("seasonal period is required")
	ErrInvalidSeasonalPeriod      = errors.New("seasonal period must be greater than 1")
	ErrSeasonLengthMismatch       = errors.New("initial season length does not match seasonal period")
	ErrNonNumericLevel            = errors.New("confidence level is not a finite number")
	ErrLevelOutOfRange            = errors.New("confidence level must be in (0, 100)")
	ErrOptimizationDidNotConverge = errors.New("optimization did not converge")
	ErrSeriesTooShort             = errors.New("series shorter than seasonal period")
	ErrUnresolvedParameter        = errors.New("parameter has not been estimated")
)

// Range checks that a set value lies in the inclusive interval [lo, hi].
// Unset values always pass.
func Range(name string, v float64, set bool, lo, hi float64) error {
	if !set {
		return nil
	}
	if math.IsNaN(v) || v < lo || v > hi {
		return fmt.Errorf("%s=%g not in [%g, %g]: %w", name, v, lo, hi, ErrParameterOutOfRange)
	}
	return nil
}

// Smoothing checks a smoothing coefficient against [0, 1].
func Smoothing(name string, v float64, set bool) error {
	return Range(name, v, set, SmoothingMin, SmoothingMax)
}

// Damping checks a damping factor against [DampingMin, DampingMax].
func Damping(v float64, set bool) error {
	return Range("phi", v, set, DampingMin, DampingMax)
}

// Series checks the observation count and forecast horizon.
func Series(n, h int) error {
	if n <= 0 {
		return ErrEmptyInput
	}
	if h <= 0 {
		return fmt.Errorf("h=%d: %w", h, ErrInvalidHorizon)
	}
	return nil
}

// Period checks a seasonal period. Zero means the period was never set.
func Period(m int) error {
	if m == 0 {
		return ErrMissingSeasonalPeriod
	}
	if m <= 1 {
		return fmt.Errorf("m=%d: %w", m, ErrInvalidSeasonalPeriod)
	}
	return nil
}

// Seasonal checks the seasonal period and the length of the initial season vector.
func Seasonal(m, seasonLen int) error {
	if err := Period(m); err != nil {
		return err
	}
	if seasonLen != m {
		return fmt.Errorf("len(init_season)=%d, m=%d: %w", seasonLen, m, ErrSeasonLengthMismatch)
	}
	return nil
}

// Levels checks prediction interval confidence levels, given in percent.
func Levels(levels []float64) error {
	for _, l := range levels {
		if math.IsNaN(l) || math.IsInf(l, 0) {
			return fmt.Errorf("level %v: %w", l, ErrNonNumericLevel)
		}
		if l <= 0 || l >= 100 {
			return fmt.Errorf("level %g: %w", l, ErrLevelOutOfRange)
		}
	}
	return nil
}
