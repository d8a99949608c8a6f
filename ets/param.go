package ets

import "strconv"

// Parameter names used in logs, summaries and Fitter.Seeds.
const (
	ParamAlpha     = "alpha"
	ParamBeta      = "beta"
	ParamGamma     = "gamma"
	ParamPhi       = "phi"
	ParamInitLevel = "init_level"
	ParamInitTrend = "init_trend"
)

// Param is a model parameter that is either fixed by the caller or free to
// be estimated. The zero value is Free.
type Param struct {
	value float64
	fixed bool
}

// Fixed returns a parameter pinned to v.
func Fixed(v float64) Param {
	return Param{value: v, fixed: true}
}

// Free returns a parameter to be estimated by Fit.
func Free() Param {
	return Param{}
}

// IsFixed reports whether the parameter has a value.
func (p Param) IsFixed() bool {
	return p.fixed
}

// Value returns the pinned value and whether the parameter is fixed.
func (p Param) Value() (float64, bool) {
	return p.value, p.fixed
}

func (p Param) String() string {
	if !p.fixed {
		return "free"
	}
	return strconv.FormatFloat(p.value, 'g', -1, 64)
}

// Parameter is a named parameter as reported by Parameters.
type Parameter struct {
	Name      string
	Value     Param
	Estimated bool // set by Fit for parameters it filled in
}

// slot describes one parameter position of a model variant for the fitter.
type slot struct {
	name         string
	param        Param
	seed         float64
	lower, upper float64
}
