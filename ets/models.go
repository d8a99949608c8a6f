package ets

import (
	"fmt"
	"math"
	"slices"

	"github.com/sartorproj/goets/timeseries"
	"github.com/sartorproj/goets/validate"
)

// DefaultHorizon is a convenient forecast horizon for callers without a preference.
const DefaultHorizon = 10

// Model is one of the exponential smoothing variants SES, Holt or
// HoltWinters. The interface is sealed; models are immutable values.
type Model interface {
	// Name identifies the variant, e.g. "Holt (damped)".
	Name() string
	// Horizon is the number of steps forecast beyond the observations.
	Horizon() int
	// Observations returns a copy of the series the model was built on.
	Observations() []float64
	// Parameters lists the smoothing and initial-state parameters in a fixed order.
	Parameters() []Parameter

	slots() []slot
	run(vals []float64) *trace
	with(vals []float64, estimated []string) Model
}

var (
	_ Model = SES{}
	_ Model = Holt{}
	_ Model = HoltWinters{}
)

type base struct {
	y         []float64
	h         int
	estimated []string
}

func newBase(series *timeseries.Series, h int) (base, error) {
	if err := validate.Series(series.Len(), h); err != nil {
		return base{}, err
	}
	return base{y: series.Data(), h: h}, nil
}

func (b base) Horizon() int { return b.h }

func (b base) Observations() []float64 { return slices.Clone(b.y) }

func (b base) parameters(ss []slot) []Parameter {
	out := make([]Parameter, len(ss))
	for i, s := range ss {
		out[i] = Parameter{
			Name:      s.name,
			Value:     s.param,
			Estimated: slices.Contains(b.estimated, s.name),
		}
	}
	return out
}

func unbounded(name string, p Param, seed float64) slot {
	return slot{name: name, param: p, seed: seed, lower: math.Inf(-1), upper: math.Inf(1)}
}

func smoothing(name string, p Param, seed float64) slot {
	return slot{name: name, param: p, seed: seed, lower: validate.SmoothingMin, upper: validate.SmoothingMax}
}

// SESConfig holds the optional parameters of simple exponential smoothing.
type SESConfig struct {
	Alpha     Param
	InitLevel Param
}

// SES is simple exponential smoothing: a level-only model with a flat forecast.
type SES struct {
	base
	cfg SESConfig
}

// NewSES validates and builds a simple exponential smoothing model.
func NewSES(series *timeseries.Series, h int, cfg SESConfig) (SES, error) {
	b, err := newBase(series, h)
	if err != nil {
		return SES{}, err
	}
	if err := checkSmoothing(ParamAlpha, cfg.Alpha); err != nil {
		return SES{}, err
	}
	return SES{base: b, cfg: cfg}, nil
}

// Name implements Model.
func (m SES) Name() string { return "SES" }

// Config returns the model parameters.
func (m SES) Config() SESConfig { return m.cfg }

// Parameters implements Model.
func (m SES) Parameters() []Parameter { return m.parameters(m.slots()) }

func (m SES) slots() []slot {
	y1 := m.y[0]
	return []slot{
		smoothing(ParamAlpha, m.cfg.Alpha, 0),
		unbounded(ParamInitLevel, m.cfg.InitLevel, y1),
	}
}

func (m SES) run(v []float64) *trace {
	return sesTrace(m.y, m.h, v[0], v[1])
}

func (m SES) with(v []float64, estimated []string) Model {
	m.cfg = SESConfig{Alpha: Fixed(v[0]), InitLevel: Fixed(v[1])}
	m.estimated = estimated
	return m
}

// HoltConfig holds the optional parameters of Holt's linear trend method.
type HoltConfig struct {
	Alpha     Param
	Beta      Param
	Phi       Param
	InitLevel Param
	InitTrend Param
	// Damped lets Fit estimate Phi. Without it a free Phi is pinned to 1.
	Damped bool
}

// Holt is Holt's linear trend method, optionally with a damped trend.
type Holt struct {
	base
	cfg HoltConfig
	// explicitPhi records a caller-supplied phi on an undamped model.
	explicitPhi bool
}

// NewHolt validates and builds a Holt model. A fixed Phi must be 1 or lie in
// [0.80, 0.98].
func NewHolt(series *timeseries.Series, h int, cfg HoltConfig) (Holt, error) {
	b, err := newBase(series, h)
	if err != nil {
		return Holt{}, err
	}
	if err := checkSmoothing(ParamAlpha, cfg.Alpha); err != nil {
		return Holt{}, err
	}
	if err := checkSmoothing(ParamBeta, cfg.Beta); err != nil {
		return Holt{}, err
	}
	if phi, ok := cfg.Phi.Value(); ok && phi != 1 {
		if err := validate.Damping(phi, true); err != nil {
			return Holt{}, err
		}
	}

	m := Holt{base: b, cfg: cfg}
	if !cfg.Damped {
		if phi, ok := cfg.Phi.Value(); ok {
			m.explicitPhi = phi != 1
		} else {
			m.cfg.Phi = Fixed(1)
		}
	}
	return m, nil
}

// Name implements Model.
func (m Holt) Name() string {
	if m.Damped() {
		return "Holt (damped)"
	}
	return "Holt"
}

// Config returns the model parameters. For an undamped model Phi is Fixed(1).
func (m Holt) Config() HoltConfig { return m.cfg }

// Damped reports whether the trend is damped, either because the caller asked
// for it or because an explicit phi below 1 was supplied.
func (m Holt) Damped() bool { return m.cfg.Damped || m.explicitPhi }

// Parameters implements Model.
func (m Holt) Parameters() []Parameter { return m.parameters(m.slots()) }

func (m Holt) slots() []slot {
	y1 := m.y[0]
	return []slot{
		smoothing(ParamAlpha, m.cfg.Alpha, 0.1),
		smoothing(ParamBeta, m.cfg.Beta, 0.1),
		{name: ParamPhi, param: m.cfg.Phi, seed: 0.9, lower: validate.DampingMin, upper: validate.DampingFitMax},
		unbounded(ParamInitLevel, m.cfg.InitLevel, y1),
		unbounded(ParamInitTrend, m.cfg.InitTrend, y1),
	}
}

func (m Holt) run(v []float64) *trace {
	return holtTrace(m.y, m.h, v[0], v[1], v[2], v[3], v[4])
}

func (m Holt) with(v []float64, estimated []string) Model {
	m.cfg.Alpha = Fixed(v[0])
	m.cfg.Beta = Fixed(v[1])
	m.cfg.Phi = Fixed(v[2])
	m.cfg.InitLevel = Fixed(v[3])
	m.cfg.InitTrend = Fixed(v[4])
	m.estimated = estimated
	return m
}

// HoltWintersConfig holds the parameters of the additive Holt-Winters method.
// Period and InitSeason are required; InitSeason is never estimated.
type HoltWintersConfig struct {
	Alpha      Param
	Beta       Param
	Gamma      Param
	Period     int
	InitLevel  Param
	InitTrend  Param
	InitSeason []float64 // seasonal states for the m periods before the first observation
}

// HoltWinters is the additive seasonal Holt-Winters method.
type HoltWinters struct {
	base
	cfg HoltWintersConfig
}

// NewHoltWinters validates and builds an additive Holt-Winters model.
func NewHoltWinters(series *timeseries.Series, h int, cfg HoltWintersConfig) (HoltWinters, error) {
	b, err := newBase(series, h)
	if err != nil {
		return HoltWinters{}, err
	}
	for _, p := range []struct {
		name string
		p    Param
	}{{ParamAlpha, cfg.Alpha}, {ParamBeta, cfg.Beta}, {ParamGamma, cfg.Gamma}} {
		if err := checkSmoothing(p.name, p.p); err != nil {
			return HoltWinters{}, err
		}
	}
	if err := validate.Seasonal(cfg.Period, len(cfg.InitSeason)); err != nil {
		return HoltWinters{}, err
	}

	cfg.InitSeason = slices.Clone(cfg.InitSeason)
	return HoltWinters{base: b, cfg: cfg}, nil
}

// Name implements Model.
func (m HoltWinters) Name() string { return "Holt-Winters" }

// Config returns the model parameters. InitSeason is a copy.
func (m HoltWinters) Config() HoltWintersConfig {
	cfg := m.cfg
	cfg.InitSeason = slices.Clone(m.cfg.InitSeason)
	return cfg
}

// Period returns the seasonal period.
func (m HoltWinters) Period() int { return m.cfg.Period }

// Parameters implements Model.
func (m HoltWinters) Parameters() []Parameter { return m.parameters(m.slots()) }

func (m HoltWinters) slots() []slot {
	y1 := m.y[0]
	return []slot{
		smoothing(ParamAlpha, m.cfg.Alpha, 0),
		smoothing(ParamBeta, m.cfg.Beta, 0),
		smoothing(ParamGamma, m.cfg.Gamma, 0),
		unbounded(ParamInitLevel, m.cfg.InitLevel, y1),
		unbounded(ParamInitTrend, m.cfg.InitTrend, y1),
	}
}

func (m HoltWinters) run(v []float64) *trace {
	return holtWintersTrace(m.y, m.h, m.cfg.InitSeason, v[0], v[1], v[2], v[3], v[4])
}

func (m HoltWinters) with(v []float64, estimated []string) Model {
	m.cfg.Alpha = Fixed(v[0])
	m.cfg.Beta = Fixed(v[1])
	m.cfg.Gamma = Fixed(v[2])
	m.cfg.InitLevel = Fixed(v[3])
	m.cfg.InitTrend = Fixed(v[4])
	m.estimated = estimated
	return m
}

func checkSmoothing(name string, p Param) error {
	v, ok := p.Value()
	return validate.Smoothing(name, v, ok)
}

// resolved returns the parameter values of m in slot order, failing when any
// parameter is still free.
func resolved(m Model) ([]float64, error) {
	ss := m.slots()
	vals := make([]float64, len(ss))
	for i, s := range ss {
		v, ok := s.param.Value()
		if !ok {
			return nil, fmt.Errorf("%s %s: %w", m.Name(), s.name, validate.ErrUnresolvedParameter)
		}
		vals[i] = v
	}
	return vals, nil
}
