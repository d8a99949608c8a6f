package main

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Dataset defines a time series dataset to analyze
type Dataset struct {
	Name        string  `mapstructure:"name"`
	Description string  `mapstructure:"description"`
	File        string  `mapstructure:"file"`
	Column      string  `mapstructure:"column"`
	FilterCol   string  `mapstructure:"filter_col"` // optional
	FilterVal   string  `mapstructure:"filter_val"`
	Period      int     `mapstructure:"period"` // 0 = non-seasonal
	Scale       float64 `mapstructure:"scale"`
	SkipFirst   int     `mapstructure:"skip_first"`
	MaxObs      int     `mapstructure:"max_obs"` // 0 = all, counted from the end
}

// loadConfig reads the demo configuration from file and GOETS_* environment
// variables.
func loadConfig(configPath string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("data_dir", "./demo/data")
	v.SetDefault("output", "forecast_results.json")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("fit.verbose", false)
	v.SetDefault("fit.method", "lbfgsb")
	v.SetDefault("intervals.levels", []float64{80, 95})

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("goets")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./demo")
	}

	v.SetEnvPrefix("GOETS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return v, nil
}

// datasets decodes the "datasets" list.
func datasets(v *viper.Viper) ([]Dataset, error) {
	var out []Dataset
	if err := v.UnmarshalKey("datasets", &out); err != nil {
		return nil, fmt.Errorf("decoding datasets: %w", err)
	}
	return out, nil
}

// newLogger creates a configured Zap logger from Viper settings.
// Reads "logging.level" (debug, info, warn, error) and "logging.format"
// (json, console).
func newLogger(v *viper.Viper) (*zap.Logger, error) {
	level := v.GetString("logging.level")
	format := v.GetString("logging.format")

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	switch format {
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format %q: must be \"json\" or \"console\"", format)
	}

	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	return cfg.Build()
}
