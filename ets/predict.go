package ets

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/sartorproj/goets/stats"
	"github.com/sartorproj/goets/validate"
)

// DefaultLevels are the prediction interval confidence levels, in percent,
// used when none are given.
var DefaultLevels = []float64{80, 95}

// Predict returns the h forecasts of a model whose parameters are all fixed,
// typically the result of Fit.
func Predict(m Model) ([]float64, error) {
	r, err := Recurse(m)
	if err != nil {
		return nil, err
	}
	return r.Forecast(), nil
}

// Interval holds point forecasts with prediction intervals. Lower and Upper
// have one row per level and one column per horizon step.
type Interval struct {
	Point  []float64
	Levels []float64
	Lower  [][]float64
	Upper  [][]float64
	Sigma2 float64
}

// Intervals computes normal prediction intervals for the forecasts of m.
// The residual variance is SSE/(T-k), k being the number of estimated
// parameters, and is scaled per step by the additive-error state space
// variance of the model class.
func Intervals(m Model, levels []float64) (*Interval, error) {
	if levels == nil {
		levels = DefaultLevels
	}
	if err := validate.Levels(levels); err != nil {
		return nil, err
	}

	vals, err := resolved(m)
	if err != nil {
		return nil, err
	}
	tr := m.run(vals)
	n := len(tr.residuals)
	h := m.Horizon()

	sigma2 := residualVariance(tr.sse, n, len(estimatedOf(m)))
	sd := make([]float64, h)
	for j := 1; j <= h; j++ {
		sd[j-1] = math.Sqrt(sigma2 * varianceFactor(m, vals, j))
	}

	point := tr.values[n:]
	out := &Interval{
		Point:  point,
		Levels: append([]float64(nil), levels...),
		Lower:  make([][]float64, len(levels)),
		Upper:  make([][]float64, len(levels)),
		Sigma2: sigma2,
	}
	for i, level := range levels {
		z := stats.ZScore(level)
		out.Lower[i] = floats.AddScaledTo(make([]float64, h), point, -z, sd)
		out.Upper[i] = floats.AddScaledTo(make([]float64, h), point, z, sd)
	}
	return out, nil
}

func residualVariance(sse float64, n, k int) float64 {
	if n > k {
		return sse / float64(n-k)
	}
	return sse / float64(n)
}

// varianceFactor returns v_h / sigma^2 for step h, from the class 1 closed
// forms of Hyndman et al. (2008). Trend smoothing is converted to error
// correction form, beta_ec = alpha*beta.
func varianceFactor(m Model, v []float64, h int) float64 {
	hf := float64(h)
	switch model := m.(type) {
	case SES:
		alpha := v[0]
		return 1 + alpha*alpha*(hf-1)

	case Holt:
		alpha, beta, phi := v[0], v[1]*v[0], v[2]
		if phi == 1 {
			return 1 + (hf-1)*(alpha*alpha+alpha*beta*hf+beta*beta*hf*(2*hf-1)/6)
		}
		phiH := math.Pow(phi, hf)
		d := (1 - phi) * (1 - phi)
		return 1 + alpha*alpha*(hf-1) +
			beta*phi*hf/d*(2*alpha*(1-phi)+beta*phi) -
			beta*phi*(1-phiH)/(d*(1-phi*phi))*(2*alpha*(1-phi*phi)+beta*phi*(1+2*phi-phiH))

	case HoltWinters:
		alpha, beta, gamma := v[0], v[1]*v[0], v[2]
		period := float64(model.Period())
		k := float64((h - 1) / model.Period())
		return 1 + (hf-1)*(alpha*alpha+alpha*beta*hf+beta*beta*hf*(2*hf-1)/6) +
			gamma*k*(2*alpha+gamma+beta*period*(k+1))
	}
	return 1
}

func estimatedOf(m Model) []string {
	var out []string
	for _, p := range m.Parameters() {
		if p.Estimated {
			out = append(out, p.Name)
		}
	}
	return out
}
