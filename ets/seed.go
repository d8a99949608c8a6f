package ets

import (
	"fmt"

	"github.com/sartorproj/goets/stats"
	"github.com/sartorproj/goets/timeseries"
	"github.com/sartorproj/goets/validate"
)

// SeasonalSeed derives an InitSeason vector of length m from a classical
// additive decomposition of series. Element j is the seasonal index of the
// phase of observation j, which is the order HoltWintersConfig expects.
func SeasonalSeed(series *timeseries.Series, m int) ([]float64, error) {
	if series.Len() == 0 {
		return nil, validate.ErrEmptyInput
	}
	if err := validate.Period(m); err != nil {
		return nil, err
	}
	d, err := stats.Decompose(series.Data(), m, stats.Additive)
	if err != nil {
		return nil, fmt.Errorf("seasonal seed m=%d: %w", m, err)
	}
	return d.Indices, nil
}
