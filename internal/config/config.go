package config

import (
	"strings"

	"github.com/spf13/viper"

	"tabscope/internal/errors"
)

// Analysis carries every threshold and cap the engine consults. It is an
// explicit value threaded through all components; there is no process-wide
// settings state.
type Analysis struct {
	// MinColumns is the minimum column count a loaded table must have.
	MinColumns int `mapstructure:"min_columns"`
	// MaxRows caps the table size; excess rows are truncated, not rejected.
	MaxRows int `mapstructure:"max_rows"`
	// MaxFileSize caps raw input size in bytes.
	MaxFileSize int64 `mapstructure:"max_file_size"`
	// MaxCategories is the distinct-value ceiling for categorical columns.
	MaxCategories int `mapstructure:"max_categories"`
	// SignificanceLevel is the p-value threshold for hypothesis tests.
	SignificanceLevel float64 `mapstructure:"significance_level"`
	// OutlierMethod selects outlier detection: "iqr" or "zscore".
	OutlierMethod string `mapstructure:"outlier_method"`
	// MissingWarnThreshold is the missing fraction above which a column
	// costs 5 quality points.
	MissingWarnThreshold float64 `mapstructure:"missing_warn_threshold"`
	// MissingFlagThreshold is the missing fraction above which a column
	// costs 15 quality points.
	MissingFlagThreshold float64 `mapstructure:"missing_flag_threshold"`
	// SampleSeed seeds the deterministic sampling used by the datetime
	// detector and the normality test.
	SampleSeed int64 `mapstructure:"sample_seed"`
}

// Config is the full application configuration.
type Config struct {
	Analysis Analysis `mapstructure:"analysis"`
}

// Default returns the engine defaults.
func Default() Analysis {
	return Analysis{
		MinColumns:           2,
		MaxRows:              100000,
		MaxFileSize:          50 * 1024 * 1024,
		MaxCategories:        50,
		SignificanceLevel:    0.05,
		OutlierMethod:        "iqr",
		MissingWarnThreshold: 0.20,
		MissingFlagThreshold: 0.50,
		SampleSeed:           1,
	}
}

// Load reads configuration from an optional YAML file and TABSCOPE_*
// environment variables, layered over the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("analysis.min_columns", def.MinColumns)
	v.SetDefault("analysis.max_rows", def.MaxRows)
	v.SetDefault("analysis.max_file_size", def.MaxFileSize)
	v.SetDefault("analysis.max_categories", def.MaxCategories)
	v.SetDefault("analysis.significance_level", def.SignificanceLevel)
	v.SetDefault("analysis.outlier_method", def.OutlierMethod)
	v.SetDefault("analysis.missing_warn_threshold", def.MissingWarnThreshold)
	v.SetDefault("analysis.missing_flag_threshold", def.MissingFlagThreshold)
	v.SetDefault("analysis.sample_seed", def.SampleSeed)

	v.SetEnvPrefix("TABSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal configuration")
	}
	if err := cfg.Analysis.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks caller-supplied thresholds; failures are fatal
// CONFIG_INVALID errors.
func (a Analysis) Validate() error {
	if a.MinColumns < 1 {
		return errors.ConfigInvalid("min_columns must be at least 1")
	}
	if a.MaxRows < 1 {
		return errors.ConfigInvalid("max_rows must be positive")
	}
	if a.MaxCategories < 1 {
		return errors.ConfigInvalid("max_categories must be positive")
	}
	if a.SignificanceLevel <= 0 || a.SignificanceLevel >= 1 {
		return errors.ConfigInvalid("significance_level must be in (0, 1)")
	}
	switch a.OutlierMethod {
	case "iqr", "zscore":
	default:
		return errors.ConfigInvalid("outlier_method must be \"iqr\" or \"zscore\"")
	}
	if a.MissingWarnThreshold < 0 || a.MissingWarnThreshold > 1 {
		return errors.ConfigInvalid("missing_warn_threshold must be in [0, 1]")
	}
	if a.MissingFlagThreshold < 0 || a.MissingFlagThreshold > 1 {
		return errors.ConfigInvalid("missing_flag_threshold must be in [0, 1]")
	}
	return nil
}
