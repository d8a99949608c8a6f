package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DecompositionType selects how the components combine.
type DecompositionType string

const (
	Additive       DecompositionType = "additive"       // Y = T + S + R
	Multiplicative DecompositionType = "multiplicative" // Y = T * S * R
)

// ErrShortDecomposition is returned when fewer than two full periods are available.
var ErrShortDecomposition = errors.New("decomposition needs at least two full periods")

// Decomposition holds the components of a classical decomposition.
// Trend and Residual are NaN where the centred moving average is undefined.
type Decomposition struct {
	Trend    []float64
	Seasonal []float64
	Residual []float64
	// Indices holds one seasonal index per phase, phase 0 being the first observation.
	Indices []float64
	Period  int
	Type    DecompositionType
}

// Decompose performs classical seasonal decomposition using a centred moving
// average for the trend.
func Decompose(x []float64, period int, kind DecompositionType) (*Decomposition, error) {
	n := len(x)
	if period < 2 || n < 2*period {
		return nil, ErrShortDecomposition
	}
	if kind != Multiplicative {
		kind = Additive
	}

	trend := centredMovingAverage(x, period)

	// Average the detrended values within each phase.
	indices := make([]float64, period)
	counts := make([]int, period)
	for i := 0; i < n; i++ {
		if math.IsNaN(trend[i]) {
			continue
		}
		var d float64
		if kind == Multiplicative {
			if trend[i] == 0 {
				continue
			}
			d = x[i] / trend[i]
		} else {
			d = x[i] - trend[i]
		}
		indices[i%period] += d
		counts[i%period]++
	}
	for i := range indices {
		if counts[i] > 0 {
			indices[i] /= float64(counts[i])
		}
	}

	mean := floats.Sum(indices) / float64(period)
	if kind == Multiplicative {
		if mean != 0 {
			floats.Scale(1/mean, indices)
		}
	} else {
		floats.AddConst(-mean, indices)
	}

	seasonal := make([]float64, n)
	residual := make([]float64, n)
	for i := 0; i < n; i++ {
		seasonal[i] = indices[i%period]
		switch {
		case math.IsNaN(trend[i]):
			residual[i] = math.NaN()
		case kind == Multiplicative:
			if trend[i] == 0 || seasonal[i] == 0 {
				residual[i] = math.NaN()
			} else {
				residual[i] = x[i] / (trend[i] * seasonal[i])
			}
		default:
			residual[i] = x[i] - trend[i] - seasonal[i]
		}
	}

	return &Decomposition{
		Trend:    trend,
		Seasonal: seasonal,
		Residual: residual,
		Indices:  indices,
		Period:   period,
		Type:     kind,
	}, nil
}

// centredMovingAverage uses a 2 x period MA for even periods and a plain
// centred MA for odd periods.
func centredMovingAverage(x []float64, period int) []float64 {
	n := len(x)
	trend := make([]float64, n)
	for i := range trend {
		trend[i] = math.NaN()
	}

	half := period / 2
	for i := half; i < n-half; i++ {
		sum := 0.0
		if period%2 == 0 {
			sum += 0.5*x[i-half] + 0.5*x[i+half]
			for j := i - half + 1; j < i+half; j++ {
				sum += x[j]
			}
		} else {
			for j := i - half; j <= i+half; j++ {
				sum += x[j]
			}
		}
		trend[i] = sum / float64(period)
	}

	return trend
}
