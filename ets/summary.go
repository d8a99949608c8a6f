package ets

import (
	"math"

	"github.com/sartorproj/goets/stats"
)

// Summary describes a fully specified model: its parameters, goodness of
// fit and a residual autocorrelation test.
type Summary struct {
	Model      string
	Parameters []Parameter
	SSE        float64
	Sigma2     float64 // SSE/(T-k), k the number of estimated parameters
	LogLik     float64
	AIC        float64
	AICc       float64 // Corrected AIC
	BIC        float64
	NObs       int
	Residuals  []float64
	LjungBox   *stats.LjungBoxResult
}

// Summarize computes the summary of m. Every parameter of m must be fixed.
func Summarize(m Model) (*Summary, error) {
	tr, err := traceOf(m)
	if err != nil {
		return nil, err
	}

	n := len(tr.residuals)
	estimated := len(estimatedOf(m))
	s := &Summary{
		Model:      m.Name(),
		Parameters: m.Parameters(),
		SSE:        tr.sse,
		Sigma2:     residualVariance(tr.sse, n, estimated),
		NObs:       n,
		Residuals:  tr.residuals,
		LjungBox:   stats.LjungBox(tr.residuals, min(10, n-1), estimated),
	}
	s.informationCriteria(n, estimated+1)
	return s, nil
}

// informationCriteria fills LogLik, AIC, AICc and BIC assuming Gaussian
// errors with variance SSE/n. k counts the error variance.
func (s *Summary) informationCriteria(n, k int) {
	nf, kf := float64(n), float64(k)

	if s.SSE > 0 {
		v := s.SSE / nf
		s.LogLik = -nf/2*math.Log(2*math.Pi) - nf/2*math.Log(v) - nf/2
	} else {
		s.LogLik = math.Inf(1)
	}

	s.AIC = -2*s.LogLik + 2*kf
	if nf-kf-1 > 0 {
		s.AICc = s.AIC + 2*kf*(kf+1)/(nf-kf-1)
	} else {
		s.AICc = math.Inf(1)
	}
	s.BIC = -2*s.LogLik + kf*math.Log(nf)
}
