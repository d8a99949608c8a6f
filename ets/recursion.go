package ets

import (
	"math"
	"slices"
)

// Recursion is the output of running a fully specified model over its
// observations: the T in-sample values followed by the h forecasts, and the
// sum of squared one-step-ahead errors.
type Recursion struct {
	Values []float64
	SSE    float64
	NObs   int
}

// InSample returns the first NObs values.
func (r Recursion) InSample() []float64 {
	return r.Values[:r.NObs]
}

// Forecast returns the values beyond the observations.
func (r Recursion) Forecast() []float64 {
	return r.Values[r.NObs:]
}

// States holds the state trajectories of one recursion. Level and Trend are
// indexed 0..T, Season 0..T+m-1 with the first m entries being the initial
// seasonal states. Trend and Season are nil for variants without them.
type States struct {
	Level  []float64
	Trend  []float64
	Season []float64
}

type trace struct {
	values    []float64
	sse       float64
	residuals []float64
	states    States
}

// Recurse runs the recursion of a model whose parameters are all fixed.
func Recurse(m Model) (Recursion, error) {
	tr, err := traceOf(m)
	if err != nil {
		return Recursion{}, err
	}
	return Recursion{Values: tr.values, SSE: tr.sse, NObs: len(tr.residuals)}, nil
}

// StatesOf returns the level, trend and season trajectories of a model whose
// parameters are all fixed.
func StatesOf(m Model) (*States, error) {
	tr, err := traceOf(m)
	if err != nil {
		return nil, err
	}
	return &tr.states, nil
}

// Residuals returns y_t minus the one-step-ahead forecast for t = 1..T.
func Residuals(m Model) ([]float64, error) {
	tr, err := traceOf(m)
	if err != nil {
		return nil, err
	}
	return slices.Clone(tr.residuals), nil
}

func traceOf(m Model) (*trace, error) {
	vals, err := resolved(m)
	if err != nil {
		return nil, err
	}
	return m.run(vals), nil
}

// sesTrace: l_t = a*y_t + (1-a)*l_{t-1}. The stored in-sample value at t is
// l_t while the one-step forecast of y_t is l_{t-1}.
func sesTrace(y []float64, h int, alpha, l0 float64) *trace {
	n := len(y)
	level := make([]float64, n+1)
	out := make([]float64, n+h)
	resid := make([]float64, n)

	level[0] = l0
	sse := 0.0
	for t := 1; t <= n; t++ {
		e := level[t-1] - y[t-1]
		sse += e * e
		resid[t-1] = -e
		level[t] = alpha*y[t-1] + (1-alpha)*level[t-1]
		out[t-1] = level[t]
	}
	for i := 0; i < h; i++ {
		out[n+i] = level[n]
	}

	return &trace{values: out, sse: sse, residuals: resid, states: States{Level: level}}
}

func holtTrace(y []float64, h int, alpha, beta, phi, l0, b0 float64) *trace {
	n := len(y)
	level := make([]float64, n+1)
	trend := make([]float64, n+1)
	out := make([]float64, n+h)
	resid := make([]float64, n)

	level[0] = l0
	trend[0] = b0
	sse := 0.0
	for t := 1; t <= n; t++ {
		f := level[t-1] + phi*trend[t-1]
		out[t-1] = f
		e := f - y[t-1]
		sse += e * e
		resid[t-1] = -e
		level[t] = alpha*y[t-1] + (1-alpha)*(level[t-1]+phi*trend[t-1])
		trend[t] = beta*(level[t]-level[t-1]) + (1-beta)*phi*trend[t-1]
	}
	for i := 1; i <= h; i++ {
		out[n+i-1] = level[n] + holtCoefficient(phi, i, h)*trend[n]
	}

	return &trace{values: out, sse: sse, residuals: resid, states: States{Level: level, Trend: trend}}
}

// holtCoefficient is the trend multiplier at step i of an h-step forecast.
// For a damped trend every step after the first uses phi(1-phi^h)/(1-phi),
// the full-horizon sum, rather than a per-step partial sum.
func holtCoefficient(phi float64, i, h int) float64 {
	switch {
	case phi == 1:
		return float64(i)
	case i == 1:
		return phi
	default:
		return phi * (1 - math.Pow(phi, float64(h))) / (1 - phi)
	}
}

// holtWintersTrace runs the additive seasonal recursion. season[j] holds the
// state for time j-m+1, so s_{t-m} is season[t-1] and s_t is season[t+m-1].
func holtWintersTrace(y []float64, h int, init []float64, alpha, beta, gamma, l0, b0 float64) *trace {
	n := len(y)
	m := len(init)
	level := make([]float64, n+1)
	trend := make([]float64, n+1)
	season := make([]float64, n+m)
	out := make([]float64, n+h)
	resid := make([]float64, n)

	copy(season, init)
	level[0] = l0
	trend[0] = b0
	sse := 0.0
	for t := 1; t <= n; t++ {
		s := season[t-1]
		f := level[t-1] + trend[t-1] + s
		out[t-1] = f
		e := f - y[t-1]
		sse += e * e
		resid[t-1] = -e
		level[t] = alpha*(y[t-1]-s) + (1-alpha)*(level[t-1]+trend[t-1])
		trend[t] = beta*(level[t]-level[t-1]) + (1-beta)*trend[t-1]
		season[t+m-1] = gamma*(y[t-1]-level[t-1]-trend[t-1]) + (1-gamma)*s
	}
	for i := 1; i <= h; i++ {
		k := (i - 1) / m
		out[n+i-1] = level[n] + float64(i)*trend[n] + season[n+i-m*k-1]
	}

	return &trace{
		values:    out,
		sse:       sse,
		residuals: resid,
		states:    States{Level: level, Trend: trend, Season: season},
	}
}
