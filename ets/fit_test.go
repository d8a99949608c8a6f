package ets

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sartorproj/goets/optim"
	"github.com/sartorproj/goets/timeseries"
	"github.com/sartorproj/goets/validate"
)

// seedSSE runs m with its free parameters at their starting values.
func seedSSE(t *testing.T, m Model) float64 {
	t.Helper()
	ss := m.slots()
	vals := make([]float64, len(ss))
	for i, s := range ss {
		vals[i] = s.seed
		if v, ok := s.param.Value(); ok {
			vals[i] = v
		}
	}
	return m.run(vals).sse
}

func paramValue(t *testing.T, m Model, name string) (float64, bool) {
	t.Helper()
	for _, p := range m.Parameters() {
		if p.Name == name {
			v, ok := p.Value.Value()
			require.True(t, ok, "%s should be fixed after fit", name)
			return v, p.Estimated
		}
	}
	t.Fatalf("no parameter %s", name)
	return 0, false
}

func TestFitModels(t *testing.T) {
	trend := trending(40)
	season := seasonal(48)
	seed, err := SeasonalSeed(season, 12)
	require.NoError(t, err)

	build := map[string]func() (Model, error){
		"ses": func() (Model, error) { return NewSES(trend, 6, SESConfig{}) },
		"holt": func() (Model, error) { return NewHolt(trend, 6, HoltConfig{}) },
		"holt damped": func() (Model, error) {
			return NewHolt(trend, 6, HoltConfig{Damped: true})
		},
		"holt-winters": func() (Model, error) {
			return NewHoltWinters(season, 18, HoltWintersConfig{Period: 12, InitSeason: seed})
		},
	}

	for name, newModel := range build {
		t.Run(name, func(t *testing.T) {
			m, err := newModel()
			require.NoError(t, err)

			fitted, err := NewFitter().Fit(m)
			require.NoError(t, err)
			assert.Equal(t, m.Name(), fitted.Name())

			forecast, err := Predict(fitted)
			require.NoError(t, err)
			assert.Len(t, forecast, m.Horizon())
			for _, v := range forecast {
				assert.False(t, math.IsNaN(v))
			}

			r, err := Recurse(fitted)
			require.NoError(t, err)
			assert.LessOrEqual(t, r.SSE, seedSSE(t, m))

			for _, s := range fitted.slots() {
				v, ok := s.param.Value()
				require.True(t, ok)
				assert.GreaterOrEqual(t, v, s.lower, s.name)
				assert.LessOrEqual(t, v, s.upper, s.name)
			}

			for _, p := range m.Parameters() {
				assert.False(t, p.Estimated, "original %s must not change", p.Name)
			}
		})
	}
}

func TestFitGenericKeepsType(t *testing.T) {
	m, err := NewSES(trending(30), 4, SESConfig{})
	require.NoError(t, err)

	fitted, err := Fit(m)
	require.NoError(t, err)

	alpha, estimated := paramValue(t, fitted, ParamAlpha)
	assert.True(t, estimated)
	assert.GreaterOrEqual(t, alpha, 0.0)
	assert.LessOrEqual(t, alpha, 1.0)
	assert.True(t, fitted.Config().Alpha.IsFixed())
	assert.False(t, m.Config().Alpha.IsFixed())
}

func TestFitKeepsPinnedParameters(t *testing.T) {
	m, err := NewHolt(trending(30), 4, HoltConfig{Alpha: Fixed(0.3), InitTrend: Fixed(0.5)})
	require.NoError(t, err)

	fitted, err := FitWith(NewFitter(), m)
	require.NoError(t, err)

	alpha, estimated := paramValue(t, fitted, ParamAlpha)
	assert.Equal(t, 0.3, alpha)
	assert.False(t, estimated)

	trend, estimated := paramValue(t, fitted, ParamInitTrend)
	assert.Equal(t, 0.5, trend)
	assert.False(t, estimated)

	phi, estimated := paramValue(t, fitted, ParamPhi)
	assert.Equal(t, 1.0, phi)
	assert.False(t, estimated)

	_, estimated = paramValue(t, fitted, ParamBeta)
	assert.True(t, estimated)
	_, estimated = paramValue(t, fitted, ParamInitLevel)
	assert.True(t, estimated)
}

func TestFitAllFixedIsIdentity(t *testing.T) {
	m, err := NewSES(trending(10), 3, SESConfig{Alpha: Fixed(0.2), InitLevel: Fixed(10)})
	require.NoError(t, err)

	fitted, err := Fit(m)
	require.NoError(t, err)
	assert.Equal(t, m, fitted)
}

func TestFitUndampedEqualsUnitPhi(t *testing.T) {
	y := trending(30)
	a, err := NewHolt(y, 5, HoltConfig{})
	require.NoError(t, err)
	b, err := NewHolt(y, 5, HoltConfig{Phi: Fixed(1)})
	require.NoError(t, err)

	fa, err := Fit(a)
	require.NoError(t, err)
	fb, err := Fit(b)
	require.NoError(t, err)

	pa, err := Predict(fa)
	require.NoError(t, err)
	pb, err := Predict(fb)
	require.NoError(t, err)
	assert.InDeltaSlice(t, pa, pb, 1e-12)
}

func TestFitAdvisories(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	f := NewFitter()
	f.Logger = zap.New(core)

	m, err := NewHolt(trending(30), 4, HoltConfig{Phi: Fixed(0.9)})
	require.NoError(t, err)

	fitted, err := FitWith(f, m)
	require.NoError(t, err)
	assert.Equal(t, "Holt (damped)", fitted.Name())

	phi, _ := paramValue(t, fitted, ParamPhi)
	assert.Equal(t, 0.9, phi)

	damping := logs.FilterMessage("damped is false but phi was supplied, trend will be damped")
	require.Equal(t, 1, damping.Len())
	assert.Equal(t, 0.9, damping.All()[0].ContextMap()[ParamPhi])

	// alpha, beta, init_level and init_trend are free
	assert.Equal(t, 4, logs.FilterMessage("parameter not set, it will be estimated").Len())
	for _, e := range logs.FilterMessage("parameter not set, it will be estimated").All() {
		assert.Equal(t, "Holt (damped)", e.ContextMap()["model"])
	}
}

func TestFitVerbose(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f := NewFitter()
	f.Logger = zap.New(core)
	f.Verbose = true

	m, err := NewSES(trending(20), 2, SESConfig{InitLevel: Fixed(10)})
	require.NoError(t, err)
	_, err = FitWith(f, m)
	require.NoError(t, err)

	evals := logs.FilterMessage("objective")
	assert.Positive(t, evals.Len())
	assert.Contains(t, evals.All()[0].ContextMap(), "sse")
}

type recordingMinimizer struct {
	problem optim.Problem
	x0      []float64
}

func (r *recordingMinimizer) Minimize(p optim.Problem, x0 []float64) (*optim.Result, error) {
	r.problem = p
	r.x0 = append([]float64(nil), x0...)
	return &optim.Result{X: x0, F: p.Func(x0), Converged: true}, nil
}

func TestFitSeedsAndBounds(t *testing.T) {
	rec := &recordingMinimizer{}
	f := &Fitter{Minimizer: rec, Seeds: map[string]float64{ParamAlpha: 0.5}}

	y := trending(20)
	m, err := NewHolt(y, 3, HoltConfig{Damped: true, InitTrend: Fixed(0)})
	require.NoError(t, err)
	_, err = f.Fit(m)
	require.NoError(t, err)

	// alpha, beta, phi, init_level
	assert.Equal(t, []float64{0.5, 0.1, 0.9, y.First()}, rec.x0)
	assert.Equal(t, []float64{0, 0, validate.DampingMin, math.Inf(-1)}, rec.problem.Lower)
	assert.Equal(t, []float64{1, 1, validate.DampingFitMax, math.Inf(1)}, rec.problem.Upper)
}

type stalledMinimizer struct{}

func (stalledMinimizer) Minimize(p optim.Problem, x0 []float64) (*optim.Result, error) {
	return &optim.Result{X: x0, F: p.Func(x0), Status: "IterationLimit"}, nil
}

type failingMinimizer struct{}

func (failingMinimizer) Minimize(optim.Problem, []float64) (*optim.Result, error) {
	return nil, optim.ErrNotConverged
}

func TestFitOptimizerOutcomes(t *testing.T) {
	m, err := NewSES(trending(20), 2, SESConfig{})
	require.NoError(t, err)

	t.Run("stalled", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		f := &Fitter{Logger: zap.New(core), Minimizer: stalledMinimizer{}}

		fitted, err := FitWith(f, m)
		require.NoError(t, err)
		alpha, _ := paramValue(t, fitted, ParamAlpha)
		assert.Equal(t, 0.0, alpha)
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("failed", func(t *testing.T) {
		f := &Fitter{Logger: zaptest.NewLogger(t), Minimizer: failingMinimizer{}}

		_, err := FitWith(f, m)
		assert.ErrorIs(t, err, validate.ErrOptimizationDidNotConverge)
		assert.ErrorIs(t, err, optim.ErrNotConverged)
	})

	t.Run("nil fitter", func(t *testing.T) {
		var f *Fitter
		fitted, err := f.Fit(m)
		require.NoError(t, err)
		assert.Equal(t, "SES", fitted.Name())
	})

	t.Run("nil model", func(t *testing.T) {
		_, err := NewFitter().Fit(nil)
		assert.Error(t, err)
	})
}

func TestFitNelderMead(t *testing.T) {
	m, err := NewHolt(trending(30), 5, HoltConfig{})
	require.NoError(t, err)

	f := &Fitter{Minimizer: optim.NewNelderMead()}
	fitted, err := FitWith(f, m)
	require.NoError(t, err)

	r, err := Recurse(fitted)
	require.NoError(t, err)
	assert.LessOrEqual(t, r.SSE, seedSSE(t, m))
}

func TestFitConcurrent(t *testing.T) {
	f := NewFitter()
	const workers = 8

	var wg sync.WaitGroup
	results := make([][]float64, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := NewHolt(trending(30+i), 4, HoltConfig{Damped: i%2 == 0})
			if err != nil {
				errs[i] = err
				return
			}
			fitted, err := FitWith(f, m)
			if err != nil {
				errs[i] = err
				return
			}
			results[i], errs[i] = Predict(fitted)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Len(t, results[i], 4)
	}

	// Same input, same answer.
	m, err := NewHolt(trending(30), 4, HoltConfig{Damped: true})
	require.NoError(t, err)
	fitted, err := FitWith(f, m)
	require.NoError(t, err)
	again, err := Predict(fitted)
	require.NoError(t, err)
	assert.Equal(t, results[0], again)
}

func TestFitDoesNotMutateSeries(t *testing.T) {
	values := []float64{5, 6, 7, 6, 8, 9, 8, 10}
	series := timeseries.New(values)
	m, err := NewSES(series, 2, SESConfig{})
	require.NoError(t, err)

	_, err = Fit(m)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6, 7, 6, 8, 9, 8, 10}, series.Data())
	assert.Equal(t, series.Data(), m.Observations())
}
