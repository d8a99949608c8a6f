package ets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goets/timeseries"
	"github.com/sartorproj/goets/validate"
)

func TestSESAlphaOneTracksLastValue(t *testing.T) {
	y := timeseries.New([]float64{3, 7, 2, 9, 4})
	m, err := NewSES(y, 4, SESConfig{Alpha: Fixed(1), InitLevel: Fixed(0)})
	require.NoError(t, err)

	r, err := Recurse(m)
	require.NoError(t, err)
	assert.Len(t, r.Values, 9)
	assert.Equal(t, []float64{3, 7, 2, 9, 4}, r.InSample())
	assert.Equal(t, []float64{4, 4, 4, 4}, r.Forecast())
}

func TestSESAlphaZeroKeepsInitialLevel(t *testing.T) {
	y := timeseries.New([]float64{3, 7, 2, 9, 4})
	m, err := NewSES(y, 2, SESConfig{Alpha: Fixed(0), InitLevel: Fixed(5)})
	require.NoError(t, err)

	r, err := Recurse(m)
	require.NoError(t, err)
	for _, v := range r.Values {
		assert.Equal(t, 5.0, v)
	}
	// (5-3)^2 + (5-7)^2 + (5-2)^2 + (5-9)^2 + (5-4)^2
	assert.InDelta(t, 34.0, r.SSE, 1e-12)

	resid, err := Residuals(m)
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, 2, -3, 4, -1}, resid)
}

func TestHoltExactLine(t *testing.T) {
	y := timeseries.New([]float64{1, 2, 3, 4, 5})
	m, err := NewHolt(y, 3, HoltConfig{
		Alpha:     Fixed(0.4),
		Beta:      Fixed(0.2),
		InitLevel: Fixed(0),
		InitTrend: Fixed(1),
	})
	require.NoError(t, err)

	r, err := Recurse(m)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, r.Values, 1e-12)
	assert.InDelta(t, 0, r.SSE, 1e-12)

	states, err := StatesOf(m)
	require.NoError(t, err)
	assert.Len(t, states.Level, 6)
	assert.Len(t, states.Trend, 6)
	assert.Nil(t, states.Season)
	assert.InDelta(t, 5, states.Level[5], 1e-12)
	assert.InDelta(t, 1, states.Trend[5], 1e-12)
}

func TestHoltUndampedEqualsUnitPhi(t *testing.T) {
	y := trending(30)
	cfg := HoltConfig{Alpha: Fixed(0.5), Beta: Fixed(0.3), InitLevel: Fixed(10), InitTrend: Fixed(0.4)}

	undamped, err := NewHolt(y, 6, cfg)
	require.NoError(t, err)
	cfg.Phi = Fixed(1)
	unit, err := NewHolt(y, 6, cfg)
	require.NoError(t, err)

	a, err := Recurse(undamped)
	require.NoError(t, err)
	b, err := Recurse(unit)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestHoltDampedForecastCoefficient(t *testing.T) {
	assert.Equal(t, 3.0, holtCoefficient(1, 3, 5))
	assert.InDelta(t, 0.9, holtCoefficient(0.9, 1, 3), 1e-15)
	// 0.9*(1-0.9^3)/(1-0.9) for every step after the first
	assert.InDelta(t, 2.439, holtCoefficient(0.9, 2, 3), 1e-12)
	assert.InDelta(t, 2.439, holtCoefficient(0.9, 3, 3), 1e-12)

	y := timeseries.New([]float64{1, 2, 3, 4, 5})
	m, err := NewHolt(y, 3, HoltConfig{
		Alpha: Fixed(1), Beta: Fixed(1), Phi: Fixed(0.9), Damped: true,
		InitLevel: Fixed(0), InitTrend: Fixed(1),
	})
	require.NoError(t, err)

	states, err := StatesOf(m)
	require.NoError(t, err)
	forecast, err := Predict(m)
	require.NoError(t, err)
	l, b := states.Level[5], states.Trend[5]
	assert.InDeltaSlice(t, []float64{l + 0.9*b, l + 2.439*b, l + 2.439*b}, forecast, 1e-12)
}

func TestHoltWintersExactSeason(t *testing.T) {
	y := timeseries.New([]float64{1, 3, 1, 3})
	m, err := NewHoltWinters(y, 3, HoltWintersConfig{
		Alpha: Fixed(0.3), Beta: Fixed(0.2), Gamma: Fixed(0.4),
		Period: 2, InitLevel: Fixed(2), InitTrend: Fixed(0),
		InitSeason: []float64{-1, 1},
	})
	require.NoError(t, err)

	r, err := Recurse(m)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 3, 1, 3, 1, 3, 1}, r.Values, 1e-12)
	assert.InDelta(t, 0, r.SSE, 1e-12)

	states, err := StatesOf(m)
	require.NoError(t, err)
	assert.Len(t, states.Season, 6)
	assert.InDeltaSlice(t, []float64{-1, 1, -1, 1, -1, 1}, states.Season, 1e-12)
}

func TestHoltWintersFlatSeasonEqualsHolt(t *testing.T) {
	y := seasonal(36)
	hw, err := NewHoltWinters(y, 14, HoltWintersConfig{
		Alpha: Fixed(0.4), Beta: Fixed(0.1), Gamma: Fixed(0),
		Period: 12, InitLevel: Fixed(20), InitTrend: Fixed(0.3),
		InitSeason: make([]float64, 12),
	})
	require.NoError(t, err)
	holt, err := NewHolt(y, 14, HoltConfig{
		Alpha: Fixed(0.4), Beta: Fixed(0.1), Phi: Fixed(1),
		InitLevel: Fixed(20), InitTrend: Fixed(0.3),
	})
	require.NoError(t, err)

	a, err := Recurse(hw)
	require.NoError(t, err)
	b, err := Recurse(holt)
	require.NoError(t, err)
	assert.InDeltaSlice(t, b.Values, a.Values, 1e-9)
	assert.InDelta(t, b.SSE, a.SSE, 1e-9)
}

func TestRecurseUnresolved(t *testing.T) {
	m, err := NewSES(trending(10), 3, SESConfig{Alpha: Fixed(0.5)})
	require.NoError(t, err)

	_, err = Recurse(m)
	assert.ErrorIs(t, err, validate.ErrUnresolvedParameter)
	_, err = Residuals(m)
	assert.ErrorIs(t, err, validate.ErrUnresolvedParameter)
	_, err = Predict(m)
	assert.ErrorIs(t, err, validate.ErrUnresolvedParameter)
}
