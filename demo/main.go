// Package main demonstrates exponential smoothing and benchmark forecasts with real data.
// Based on: Forecasting: Principles and Practice (https://otexts.com/fpppy)
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/sartorproj/goets/baseline"
	"github.com/sartorproj/goets/ets"
	"github.com/sartorproj/goets/optim"
	"github.com/sartorproj/goets/stats"
	"github.com/sartorproj/goets/timeseries"
)

// ForecastResult holds model results for JSON export
type ForecastResult struct {
	ModelName string             `json:"model_name"`
	Params    map[string]float64 `json:"params,omitempty"`
	AIC       *float64           `json:"aic,omitempty"`
	AICc      *float64           `json:"aicc,omitempty"`
	BIC       *float64           `json:"bic,omitempty"`
	LjungBoxP *float64           `json:"ljung_box_p,omitempty"`
	RMSE      float64            `json:"rmse"`
	MAE       float64            `json:"mae"`
	MAPE      float64            `json:"mape"`
	Forecasts []float64          `json:"forecasts"`
	Levels    []float64          `json:"levels"`
	Lower     [][]float64        `json:"lower"`
	Upper     [][]float64        `json:"upper"`
}

// DatasetResult holds analysis results for a dataset
type DatasetResult struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	NObs            int              `json:"n_obs"`
	Period          int              `json:"period,omitempty"`
	TrainData       []float64        `json:"train_data"`
	TestData        []float64        `json:"test_data"`
	TrainIndex      []int            `json:"train_index"`
	TestIndex       []int            `json:"test_index"`
	Models          []ForecastResult `json:"models"`
	ACF             []float64        `json:"acf"`
	SeasonalIndices []float64        `json:"seasonal_indices,omitempty"`
}

// OutputData holds all results for visualization
type OutputData struct {
	Datasets []DatasetResult `json:"datasets"`
}

type runner struct {
	fitter *ets.Fitter
	levels []float64
	logger *zap.Logger
}

func main() {
	var configPath string
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	v, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := newLogger(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	list, err := datasets(v)
	if err != nil {
		logger.Fatal("loading datasets", zap.Error(err))
	}

	var levels []float64
	if err := v.UnmarshalKey("intervals.levels", &levels); err != nil {
		logger.Fatal("decoding interval levels", zap.Error(err))
	}

	fitter := ets.NewFitter()
	fitter.Logger = logger
	fitter.Verbose = v.GetBool("fit.verbose")
	if v.GetString("fit.method") == "neldermead" {
		fitter.Minimizer = optim.NewNelderMead()
	}
	r := &runner{fitter: fitter, levels: levels, logger: logger}

	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("GoETS Demonstration - SES/Holt/Holt-Winters and benchmarks")
	fmt.Println("Reference: https://otexts.com/fpppy/nbs/08-exponential-smoothing.html")
	fmt.Println(strings.Repeat("=", 80))

	dataDir := findDataDir(v.GetString("data_dir"), list)
	fmt.Printf("\nData directory: %s\n", dataDir)

	output := OutputData{Datasets: []DatasetResult{}}

	for i, ds := range list {
		fmt.Printf("\n%s\n[%d/%d] %s\n%s\n", strings.Repeat("=", 80), i+1, len(list), ds.Name, strings.Repeat("=", 80))

		result := r.analyze(dataDir, ds)
		if result != nil {
			output.Datasets = append(output.Datasets, *result)
		}
	}

	// Export results
	fmt.Printf("\n%s\nEXPORTING RESULTS\n%s\n", strings.Repeat("=", 80), strings.Repeat("=", 80))

	out := v.GetString("output")
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		logger.Fatal("encoding results", zap.Error(err))
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		logger.Fatal("writing results", zap.String("file", out), zap.Error(err))
	}
	fmt.Printf("Exported %d datasets to %s\n", len(output.Datasets), out)
	fmt.Println(strings.Repeat("=", 80))
}

// findDataDir locates the data directory
func findDataDir(configured string, list []Dataset) string {
	if len(list) == 0 {
		return configured
	}
	for _, p := range []string{configured, "data", "./demo/data", "../demo/data"} {
		if _, err := os.Stat(filepath.Join(p, list[0].File)); err == nil {
			return p
		}
	}
	return configured
}

// analyze performs complete analysis on a dataset
func (r *runner) analyze(dataDir string, ds Dataset) *DatasetResult {
	log := r.logger.With(zap.String("dataset", ds.Name))

	series, err := loadData(dataDir, ds)
	if err != nil {
		log.Error("loading data", zap.Error(err))
		return nil
	}

	n := series.Len()
	fmt.Printf("   Loaded %d observations (%.2f to %.2f)\n", n, series.Min(), series.Max())

	testSize := calculateTestSize(n, ds.Period)
	train, test := series.Split(testSize)
	trainSize := train.Len()
	fmt.Printf("   Train: %d, Test: %d\n", trainSize, testSize)

	result := &DatasetResult{
		Name:        ds.Name,
		Description: ds.Description,
		NObs:        n,
		Period:      ds.Period,
		TrainData:   train.Values,
		TestData:    test.Values,
		TrainIndex:  makeRange(1, trainSize),
		TestIndex:   makeRange(trainSize+1, n),
		Models:      []ForecastResult{},
	}

	maxLag := min(24, trainSize/2)
	if acf := stats.ACF(train.Values, maxLag); acf != nil {
		result.ACF = acf
	}

	fmt.Println("   Fitting exponential smoothing models...")
	for _, m := range r.smoothingModels(result, train, ds.Period, testSize) {
		fr, err := r.fitModel(m, test)
		if err != nil {
			log.Warn("model skipped", zap.String("model", m.Name()), zap.Error(err))
			continue
		}
		result.Models = append(result.Models, *fr)
	}

	fmt.Println("   Computing benchmarks...")
	for _, b := range r.benchmarks(train, ds.Period, testSize) {
		rmse, mae, mape := metrics(test.Values, b.Point)
		fmt.Printf("   %-16s RMSE=%.4f\n", b.Method+":", rmse)
		result.Models = append(result.Models, ForecastResult{
			ModelName: b.Method, RMSE: rmse, MAE: mae, MAPE: mape,
			Forecasts: b.Point, Levels: b.Levels, Lower: b.Lower, Upper: b.Upper,
		})
	}

	return result
}

// smoothingModels builds the unfitted ETS candidates for a training series.
func (r *runner) smoothingModels(result *DatasetResult, train *timeseries.Series, period, h int) []ets.Model {
	var models []ets.Model
	add := func(m ets.Model, err error) {
		if err != nil {
			r.logger.Warn("invalid model", zap.Error(err))
			return
		}
		models = append(models, m)
	}

	add(ets.NewSES(train, h, ets.SESConfig{}))
	add(ets.NewHolt(train, h, ets.HoltConfig{}))
	add(ets.NewHolt(train, h, ets.HoltConfig{Damped: true}))

	if period > 0 {
		seed, err := ets.SeasonalSeed(train, period)
		if err != nil {
			r.logger.Warn("no seasonal seed", zap.Int("period", period), zap.Error(err))
			return models
		}
		result.SeasonalIndices = seed
		add(ets.NewHoltWinters(train, h, ets.HoltWintersConfig{Period: period, InitSeason: seed}))
	}
	return models
}

func (r *runner) fitModel(m ets.Model, test *timeseries.Series) (*ForecastResult, error) {
	fitted, err := r.fitter.Fit(m)
	if err != nil {
		return nil, err
	}
	pi, err := ets.Intervals(fitted, r.levels)
	if err != nil {
		return nil, err
	}
	summary, err := ets.Summarize(fitted)
	if err != nil {
		return nil, err
	}

	rmse, mae, mape := metrics(test.Values, pi.Point)
	fmt.Printf("   %-16s RMSE=%.4f AICc=%.2f\n", fitted.Name()+":", rmse, summary.AICc)

	params := make(map[string]float64)
	for _, p := range summary.Parameters {
		if v, ok := p.Value.Value(); ok {
			params[p.Name] = v
		}
	}

	fr := &ForecastResult{
		ModelName: fitted.Name(),
		Params:    params,
		AIC:       finite(summary.AIC),
		AICc:      finite(summary.AICc),
		BIC:       finite(summary.BIC),
		RMSE:      rmse,
		MAE:       mae,
		MAPE:      mape,
		Forecasts: pi.Point,
		Levels:    pi.Levels,
		Lower:     pi.Lower,
		Upper:     pi.Upper,
	}
	if summary.LjungBox != nil {
		fr.LjungBoxP = finite(summary.LjungBox.PValue)
	}
	return fr, nil
}

func (r *runner) benchmarks(train *timeseries.Series, period, h int) []*baseline.Forecast {
	var out []*baseline.Forecast
	add := func(f *baseline.Forecast, err error) {
		if err != nil {
			r.logger.Warn("benchmark skipped", zap.Error(err))
			return
		}
		out = append(out, f)
	}

	add(baseline.NewMean(train, h))
	add(baseline.NewNaive(train, h, r.levels))
	if period > 0 {
		add(baseline.NewSeasonalNaive(train, h, period, r.levels))
	}
	return out
}

// loadData loads a dataset based on configuration
func loadData(dataDir string, ds Dataset) (*timeseries.Series, error) {
	path := filepath.Join(dataDir, ds.File)

	var series *timeseries.Series
	var err error

	if ds.FilterCol != "" {
		series, err = timeseries.LoadCSVFiltered(path, ds.FilterCol, ds.FilterVal, ds.Column)
	} else {
		series, err = timeseries.LoadCSVColumn(path, ds.Column)
	}
	if err != nil {
		return nil, err
	}

	if ds.SkipFirst > 0 && series.Len() > ds.SkipFirst {
		series = series.Slice(ds.SkipFirst, series.Len())
	}
	if ds.MaxObs > 0 && series.Len() > ds.MaxObs {
		series = series.Tail(ds.MaxObs)
	}
	if ds.Scale != 0 {
		series = series.Scale(ds.Scale)
	}

	return series, nil
}

// calculateTestSize determines appropriate test set size
func calculateTestSize(n, period int) int {
	testSize := n / 5
	if period > 0 {
		testSize = max(testSize, period)
	}
	return max(min(testSize, 30), 3)
}

// metrics calculates forecast accuracy metrics
func metrics(actual, predicted []float64) (rmse, mae, mape float64) {
	n := min(len(actual), len(predicted))
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		d := actual[i] - predicted[i]
		rmse += d * d
		mae += math.Abs(d)
		if actual[i] != 0 {
			mape += math.Abs(d) / math.Abs(actual[i]) * 100
		}
	}
	return math.Sqrt(rmse / float64(n)), mae / float64(n), mape / float64(n)
}

// finite drops values JSON cannot represent.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func makeRange(start, end int) []int {
	r := make([]int, end-start+1)
	for i := range r {
		r[i] = start + i
	}
	return r
}
