package ets

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sartorproj/goets/optim"
	"github.com/sartorproj/goets/validate"
)

// Fitter estimates the free parameters of a model by minimising the sum of
// squared one-step errors over the parameter box. A Fitter holds no state
// between calls and may be shared by goroutines.
type Fitter struct {
	// Logger receives advisories and, when Verbose, one entry per objective
	// evaluation. Nil means no logging.
	Logger *zap.Logger
	// Minimizer performs the bounded search. Nil means optim.NewLBFGSB().
	Minimizer optim.Minimizer
	// Verbose logs parameter values and SSE at debug level on every evaluation.
	Verbose bool
	// Seeds overrides the default starting value of a parameter, by name.
	Seeds map[string]float64
}

// NewFitter returns a Fitter with a no-op logger and bounded L-BFGS.
func NewFitter() *Fitter {
	return &Fitter{
		Logger:    zap.NewNop(),
		Minimizer: optim.NewLBFGSB(),
	}
}

// Fit estimates the free parameters of m with a default Fitter.
func Fit[M Model](m M) (M, error) {
	return FitWith(NewFitter(), m)
}

// FitWith estimates the free parameters of m with f and returns the fitted
// model with the same concrete type.
func FitWith[M Model](f *Fitter, m M) (M, error) {
	var zero M
	fitted, err := f.Fit(m)
	if err != nil {
		return zero, err
	}
	out, ok := fitted.(M)
	if !ok {
		return zero, fmt.Errorf("ets: fitted %T is not %T", fitted, zero)
	}
	return out, nil
}

// Fit returns a copy of m with every free parameter replaced by its estimate.
// m itself is not modified.
func (f *Fitter) Fit(m Model) (Model, error) {
	if m == nil {
		return nil, errors.New("ets: nil model")
	}
	if f == nil {
		f = NewFitter()
	}
	logger := f.logger().With(zap.String("model", m.Name()))

	if holt, ok := m.(Holt); ok && holt.explicitPhi {
		phi, _ := holt.cfg.Phi.Value()
		logger.Info("damped is false but phi was supplied, trend will be damped", zap.Float64(ParamPhi, phi))
	}

	ss := m.slots()
	vals := make([]float64, len(ss))
	var free []int
	var names []string
	for i, s := range ss {
		if v, ok := s.param.Value(); ok {
			vals[i] = v
			continue
		}
		free = append(free, i)
		names = append(names, s.name)
		logger.Info("parameter not set, it will be estimated", zap.String("param", s.name))
	}

	if len(free) == 0 {
		return m, nil
	}

	x0 := make([]float64, len(free))
	lower := make([]float64, len(free))
	upper := make([]float64, len(free))
	for j, i := range free {
		x0[j] = ss[i].seed
		if seed, ok := f.Seeds[ss[i].name]; ok {
			x0[j] = seed
		}
		lower[j] = ss[i].lower
		upper[j] = ss[i].upper
	}

	pinned := vals
	objective := func(x []float64) float64 {
		trial := make([]float64, len(pinned))
		copy(trial, pinned)
		for j, i := range free {
			trial[i] = x[j]
		}
		sse := m.run(trial).sse
		if f.Verbose {
			logger.Debug("objective",
				zap.Strings("params", names),
				zap.Float64s("values", x),
				zap.Float64("sse", sse))
		}
		return sse
	}

	res, err := f.minimizer().Minimize(optim.Problem{Func: objective, Lower: lower, Upper: upper}, x0)
	if err != nil {
		return nil, fmt.Errorf("fit %s: %w: %w", m.Name(), validate.ErrOptimizationDidNotConverge, err)
	}
	if !res.Converged {
		logger.Warn("optimizer stopped before convergence, using best point found",
			zap.String("status", res.Status),
			zap.Int("evaluations", res.Evaluations))
	}

	estimated := make([]float64, len(vals))
	copy(estimated, vals)
	for j, i := range free {
		estimated[i] = res.X[j]
	}

	logger.Debug("fit complete",
		zap.Strings("params", names),
		zap.Float64s("estimates", res.X),
		zap.Float64("sse", res.F),
		zap.Int("evaluations", res.Evaluations))

	return m.with(estimated, names), nil
}

func (f *Fitter) logger() *zap.Logger {
	if f.Logger == nil {
		return zap.NewNop()
	}
	return f.Logger
}

func (f *Fitter) minimizer() optim.Minimizer {
	if f.Minimizer == nil {
		return optim.NewLBFGSB()
	}
	return f.Minimizer
}
