package baseline

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/goets/stats"
	"github.com/sartorproj/goets/timeseries"
	"github.com/sartorproj/goets/validate"
)

// DefaultLevels are the confidence levels, in percent, used when none are given.
var DefaultLevels = []float64{80, 95}

// Mean forecast multipliers for the 80% and 95% rows.
var meanLevels = []struct {
	level float64
	z     float64
}{
	{80, 1.28},
	{95, 1.96},
}

// Forecast is the result of a benchmark method. Fitted holds the
// observations followed by the point forecasts. Lower and Upper have one row
// per entry of Levels and one column per horizon step.
type Forecast struct {
	Method string
	Fitted []float64
	Point  []float64
	Levels []float64
	Lower  [][]float64
	Upper  [][]float64
}

// Horizon returns the number of forecast steps.
func (f *Forecast) Horizon() int {
	return len(f.Point)
}

// NewMean forecasts every step with the sample mean. Its intervals always
// have an 80% and a 95% row, using z = 1.28 and 1.96, with the residual
// standard error inflated by sqrt(1+1/T) beyond the first step.
func NewMean(series *timeseries.Series, h int) (*Forecast, error) {
	if err := validate.Series(series.Len(), h); err != nil {
		return nil, err
	}
	y := series.Data()
	n := float64(len(y))

	mean := stat.Mean(y, nil)
	point := constant(h, mean)

	// No degrees of freedom are removed for the estimated mean.
	const k = 0
	resid := append([]float64(nil), y...)
	floats.AddConst(-mean, resid)
	sigma := math.Sqrt(floats.Dot(resid, resid) / (n - k))

	sd := constant(h, sigma*math.Sqrt(1+1/n))
	sd[0] = sigma

	f := newForecast("mean", y, point)
	for _, ml := range meanLevels {
		f.addLevel(ml.level, ml.z, sd)
	}
	return f, nil
}

// NewNaive forecasts every step with the last observation. The half-width of
// each interval is the normal quantile of the level times the forecast.
func NewNaive(series *timeseries.Series, h int, levels []float64) (*Forecast, error) {
	if err := validate.Series(series.Len(), h); err != nil {
		return nil, err
	}
	levels, err := checkLevels(levels)
	if err != nil {
		return nil, err
	}
	y := series.Data()

	f := newForecast("naive", y, constant(h, y[len(y)-1]))
	f.addQuantileLevels(levels)
	return f, nil
}

// NewSeasonalNaive forecasts step i with the observation from the same phase
// of the last full period, y[T+i-m(k+1)] with k = (i-1)/m. Intervals follow
// NewNaive.
func NewSeasonalNaive(series *timeseries.Series, h, m int, levels []float64) (*Forecast, error) {
	if err := validate.Series(series.Len(), h); err != nil {
		return nil, err
	}
	if err := validate.Period(m); err != nil {
		return nil, err
	}
	levels, err := checkLevels(levels)
	if err != nil {
		return nil, err
	}
	y := series.Data()
	n := len(y)
	if n < m {
		return nil, fmt.Errorf("T=%d, m=%d: %w", n, m, validate.ErrSeriesTooShort)
	}

	point := make([]float64, h)
	for i := 1; i <= h; i++ {
		k := (i - 1) / m
		point[i-1] = y[n+i-m*(k+1)-1]
	}

	f := newForecast("snaive", y, point)
	f.addQuantileLevels(levels)
	return f, nil
}

func checkLevels(levels []float64) ([]float64, error) {
	if levels == nil {
		levels = DefaultLevels
	}
	if err := validate.Levels(levels); err != nil {
		return nil, err
	}
	return append([]float64(nil), levels...), nil
}

func newForecast(method string, y, point []float64) *Forecast {
	fitted := make([]float64, 0, len(y)+len(point))
	fitted = append(fitted, y...)
	fitted = append(fitted, point...)
	return &Forecast{Method: method, Fitted: fitted, Point: point}
}

// addLevel appends a row point -/+ z*sd.
func (f *Forecast) addLevel(level, z float64, sd []float64) {
	h := len(f.Point)
	f.Levels = append(f.Levels, level)
	f.Lower = append(f.Lower, floats.AddScaledTo(make([]float64, h), f.Point, -z, sd))
	f.Upper = append(f.Upper, floats.AddScaledTo(make([]float64, h), f.Point, z, sd))
}

func (f *Forecast) addQuantileLevels(levels []float64) {
	for _, level := range levels {
		f.addLevel(level, stats.ZScore(level), f.Point)
	}
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
