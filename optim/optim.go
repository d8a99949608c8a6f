// Package optim provides bounded minimizers for the parameter fitting step of
// exponential smoothing models. Box constraints are enforced by projecting
// every trial point into the box and penalising the distance travelled
// outside it, so unconstrained gonum methods can be used unchanged.
package optim

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

// ErrNotConverged is returned when a minimizer cannot produce a usable point.
var ErrNotConverged = errors.New("minimizer did not converge")

// Problem is a box-constrained minimisation problem. Lower and Upper may hold
// infinities for unbounded coordinates. Func must not retain x.
type Problem struct {
	Func  func(x []float64) float64
	Lower []float64
	Upper []float64
}

// Result is the outcome of a minimisation.
type Result struct {
	X           []float64
	F           float64
	Evaluations int
	// Converged is false when the method stopped on a limit or a line-search
	// failure but still produced a finite point.
	Converged bool
	Status    string
}

// Minimizer finds a local minimum of a Problem starting from x0.
type Minimizer interface {
	Minimize(p Problem, x0 []float64) (*Result, error)
}

// Settings are shared limits for the gonum-backed minimizers.
type Settings struct {
	MaxIterations   int
	MaxEvaluations  int
	PenaltyWeight   float64 // multiplier on the squared distance outside the box
	GradientStep    float64 // finite-difference step, LBFGSB only
	GradientTol     float64
	FunctionTol     float64
	FunctionTolIter int
}

// DefaultSettings returns limits suitable for a handful of smoothing parameters.
func DefaultSettings() Settings {
	return Settings{
		MaxIterations:   1000,
		MaxEvaluations:  20000,
		PenaltyWeight:   1e6,
		GradientStep:    1e-8,
		GradientTol:     1e-8,
		FunctionTol:     1e-12,
		FunctionTolIter: 50,
	}
}

// LBFGSB minimises with gonum's L-BFGS over the projected objective, using
// central finite differences for the gradient.
type LBFGSB struct {
	Settings Settings
	Store    int // number of correction pairs kept, 0 for gonum's default
}

// NewLBFGSB returns an LBFGSB with DefaultSettings.
func NewLBFGSB() *LBFGSB {
	return &LBFGSB{Settings: DefaultSettings()}
}

// Minimize implements Minimizer.
func (m *LBFGSB) Minimize(p Problem, x0 []float64) (*Result, error) {
	obj, err := newProjected(p, x0, m.Settings.PenaltyWeight)
	if err != nil {
		return nil, err
	}

	fdSettings := &fd.Settings{Formula: fd.Central, Step: m.Settings.GradientStep}
	problem := optimize.Problem{
		Func: obj.eval,
		Grad: func(grad, x []float64) {
			fd.Gradient(grad, obj.eval, x, fdSettings)
			obj.project(grad, x)
		},
	}

	settings := &optimize.Settings{
		MajorIterations:   m.Settings.MaxIterations,
		FuncEvaluations:   m.Settings.MaxEvaluations,
		GradientThreshold: m.Settings.GradientTol,
		Converger: &optimize.FunctionConverge{
			Absolute:   m.Settings.FunctionTol,
			Iterations: m.Settings.FunctionTolIter,
		},
	}

	res, err := optimize.Minimize(problem, obj.start(), settings, &optimize.LBFGS{Store: m.Store})
	return obj.result(res, err)
}

// NelderMead minimises with gonum's derivative-free simplex method over the
// projected objective.
type NelderMead struct {
	Settings Settings
}

// NewNelderMead returns a NelderMead with DefaultSettings.
func NewNelderMead() *NelderMead {
	return &NelderMead{Settings: DefaultSettings()}
}

// Minimize implements Minimizer.
func (m *NelderMead) Minimize(p Problem, x0 []float64) (*Result, error) {
	obj, err := newProjected(p, x0, m.Settings.PenaltyWeight)
	if err != nil {
		return nil, err
	}

	settings := &optimize.Settings{
		MajorIterations: m.Settings.MaxIterations,
		FuncEvaluations: m.Settings.MaxEvaluations,
		Converger: &optimize.FunctionConverge{
			Absolute:   m.Settings.FunctionTol,
			Iterations: m.Settings.FunctionTolIter,
		},
	}

	res, err := optimize.Minimize(optimize.Problem{Func: obj.eval}, obj.start(), settings, &optimize.NelderMead{})
	return obj.result(res, err)
}

// projected wraps a Problem so that evaluations happen at the projection of
// x onto the box, plus a quadratic penalty on the projection distance.
type projected struct {
	p       Problem
	x0      []float64
	weight  float64
	buf     []float64
	evals   int
	initial float64
}

func newProjected(p Problem, x0 []float64, weight float64) (*projected, error) {
	n := len(x0)
	if n == 0 {
		return nil, errors.New("optim: empty starting point")
	}
	if p.Func == nil {
		return nil, errors.New("optim: nil objective")
	}
	if len(p.Lower) != n || len(p.Upper) != n {
		return nil, fmt.Errorf("optim: bounds length %d/%d, want %d", len(p.Lower), len(p.Upper), n)
	}
	for i := range x0 {
		if p.Lower[i] > p.Upper[i] {
			return nil, fmt.Errorf("optim: empty box at coordinate %d", i)
		}
	}
	if weight <= 0 {
		weight = DefaultSettings().PenaltyWeight
	}
	obj := &projected{p: p, x0: x0, weight: weight, buf: make([]float64, n)}
	obj.initial = p.Func(Clamp(obj.buf, x0, p.Lower, p.Upper))
	return obj, nil
}

func (o *projected) start() []float64 {
	x := make([]float64, len(o.x0))
	return Clamp(x, o.x0, o.p.Lower, o.p.Upper)
}

func (o *projected) eval(x []float64) float64 {
	o.evals++
	Clamp(o.buf, x, o.p.Lower, o.p.Upper)
	dist := 0.0
	for i, v := range x {
		d := v - o.buf[i]
		dist += d * d
	}
	f := o.p.Func(o.buf)
	if dist == 0 {
		return f
	}
	return f + o.weight*(1+math.Abs(f))*dist
}

// project zeroes gradient components that push an active bound outward, so
// the method can report convergence on a face of the box.
func (o *projected) project(grad, x []float64) {
	for i, g := range grad {
		if (x[i] <= o.p.Lower[i] && g > 0) || (x[i] >= o.p.Upper[i] && g < 0) {
			grad[i] = 0
		}
	}
}

// result converts a gonum outcome into a Result. A gonum error is tolerated
// when a finite point was still reached.
func (o *projected) result(res *optimize.Result, err error) (*Result, error) {
	if res == nil || res.X == nil {
		if err == nil {
			err = errors.New("no result")
		}
		return nil, fmt.Errorf("%w: %v", ErrNotConverged, err)
	}

	x := make([]float64, len(res.X))
	Clamp(x, res.X, o.p.Lower, o.p.Upper)
	f := o.p.Func(x)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: non-finite objective %v at %v (%v)", ErrNotConverged, f, x, err)
	}

	// Line-search failures can leave the method worse than its seed.
	if f > o.initial {
		x = o.start()
		f = o.initial
	}

	out := &Result{
		X:           x,
		F:           f,
		Evaluations: o.evals,
		Converged:   err == nil && res.Status != optimize.IterationLimit && res.Status != optimize.FunctionEvaluationLimit,
		Status:      res.Status.String(),
	}
	if err != nil {
		out.Status = err.Error()
	}
	return out, nil
}

// Clamp writes the projection of x onto [lower, upper] into dst and returns dst.
func Clamp(dst, x, lower, upper []float64) []float64 {
	for i, v := range x {
		dst[i] = math.Max(lower[i], math.Min(upper[i], v))
	}
	return dst
}
