package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/epcrisk/internal/scoring"
)

// Config holds everything the CLI needs at startup. Values come from the
// YAML file when it exists; environment variables always win.
type Config struct {
	DB         DBConfig         `yaml:"db"`
	Log        LogConfig        `yaml:"log"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`

	// Path is the file the config was read from, empty when none existed.
	Path string `yaml:"-"`
}

type DBConfig struct {
	// Path to the SQLite store. Empty means ~/.epcrisk/epcrisk.db.
	Path string `yaml:"path" env:"EPCRISK_DB" env-default:""`
}

type LogConfig struct {
	Enabled bool   `yaml:"enabled" env:"EPCRISK_LOG" env-default:"false"`
	Level   string `yaml:"level" env:"EPCRISK_LOG_LEVEL" env-default:"info"`
}

type MetricsConfig struct {
	// Textfile, when set, receives a Prometheus textfile dump after each command.
	Textfile string `yaml:"textfile" env:"EPCRISK_METRICS_FILE" env-default:""`
}

type ThresholdsConfig struct {
	EarlyWarningFraction     float64 `yaml:"early_warning_fraction" env:"EPCRISK_EARLY_WARNING_FRACTION" env-default:"0.90"`
	OverspendCriticalExcess  float64 `yaml:"overspend_critical_excess" env:"EPCRISK_OVERSPEND_CRITICAL_EXCESS" env-default:"0.10"`
	PoDHighThreshold         float64 `yaml:"pod_high_threshold" env:"EPCRISK_POD_HIGH_THRESHOLD" env-default:"70"`
	CashRunwayMarginDays     float64 `yaml:"cash_runway_margin_days" env:"EPCRISK_CASH_RUNWAY_MARGIN_DAYS" env-default:"0"`
	RecentBurnWindow         int     `yaml:"recent_burn_window" env:"EPCRISK_RECENT_BURN_WINDOW" env-default:"7"`
	CFTSHalfLifeDays         float64 `yaml:"cfts_half_life_days" env:"EPCRISK_CFTS_HALF_LIFE_DAYS" env-default:"14"`
	ProjectedOverrunFraction float64 `yaml:"projected_overrun_fraction" env:"EPCRISK_PROJECTED_OVERRUN_FRACTION" env-default:"0.10"`
	SlowBurnEfficiency       float64 `yaml:"slow_burn_efficiency" env:"EPCRISK_SLOW_BURN_EFFICIENCY" env-default:"0.55"`
	SlowBurnMinTime          float64 `yaml:"slow_burn_min_time" env:"EPCRISK_SLOW_BURN_MIN_TIME" env-default:"0.25"`
	LabourShareFraction      float64 `yaml:"labour_share_fraction" env:"EPCRISK_LABOUR_SHARE_FRACTION" env-default:"0.60"`
	MaterialShareFraction    float64 `yaml:"material_share_fraction" env:"EPCRISK_MATERIAL_SHARE_FRACTION" env-default:"0.40"`
	PaceRiskEfficiency       float64 `yaml:"pace_risk_efficiency" env:"EPCRISK_PACE_RISK_EFFICIENCY" env-default:"1.20"`
	MachineryEfficiency      float64 `yaml:"machinery_efficiency" env:"EPCRISK_MACHINERY_EFFICIENCY" env-default:"1.05"`
}

// Scoring converts the config section into engine thresholds.
func (t ThresholdsConfig) Scoring() scoring.Thresholds {
	return scoring.Thresholds{
		EarlyWarningFraction:     t.EarlyWarningFraction,
		OverspendCriticalExcess:  t.OverspendCriticalExcess,
		PoDHighThreshold:         t.PoDHighThreshold,
		CashRunwayMarginDays:     t.CashRunwayMarginDays,
		RecentBurnWindow:         t.RecentBurnWindow,
		CFTSHalfLifeDays:         t.CFTSHalfLifeDays,
		ProjectedOverrunFraction: t.ProjectedOverrunFraction,
		SlowBurnEfficiency:       t.SlowBurnEfficiency,
		SlowBurnMinTime:          t.SlowBurnMinTime,
		LabourShareFraction:      t.LabourShareFraction,
		MaterialShareFraction:    t.MaterialShareFraction,
		PaceRiskEfficiency:       t.PaceRiskEfficiency,
		MachineryEfficiency:      t.MachineryEfficiency,
	}
}

func thresholdsConfigFrom(t scoring.Thresholds) ThresholdsConfig {
	return ThresholdsConfig{
		EarlyWarningFraction:     t.EarlyWarningFraction,
		OverspendCriticalExcess:  t.OverspendCriticalExcess,
		PoDHighThreshold:         t.PoDHighThreshold,
		CashRunwayMarginDays:     t.CashRunwayMarginDays,
		RecentBurnWindow:         t.RecentBurnWindow,
		CFTSHalfLifeDays:         t.CFTSHalfLifeDays,
		ProjectedOverrunFraction: t.ProjectedOverrunFraction,
		SlowBurnEfficiency:       t.SlowBurnEfficiency,
		SlowBurnMinTime:          t.SlowBurnMinTime,
		LabourShareFraction:      t.LabourShareFraction,
		MaterialShareFraction:    t.MaterialShareFraction,
		PaceRiskEfficiency:       t.PaceRiskEfficiency,
		MachineryEfficiency:      t.MachineryEfficiency,
	}
}

// Default returns the built-in configuration with the DB under home.
func Default(home string) *Config {
	return &Config{
		DB:         DBConfig{Path: filepath.Join(home, ".epcrisk", "epcrisk.db")},
		Log:        LogConfig{Level: "info"},
		Thresholds: thresholdsConfigFrom(scoring.DefaultThresholds()),
	}
}

// DefaultPath is ~/.epcrisk/config.yaml unless EPCRISK_CONFIG is set.
func DefaultPath(home string) string {
	if p := os.Getenv("EPCRISK_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(home, ".epcrisk", "config.yaml")
}

// Load reads .env from the working directory (if any), then the YAML file
// at path with environment overrides. A missing file is not an error.
func Load(path, home string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if _, statErr := os.Stat(path); statErr == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		cfg.Path = path
	} else if errors.Is(statErr, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("reading environment: %w", err)
		}
	} else {
		return nil, fmt.Errorf("checking config file: %w", statErr)
	}

	if cfg.DB.Path == "" {
		cfg.DB.Path = filepath.Join(home, ".epcrisk", "epcrisk.db")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q (want debug, info, warn or error)", c.Log.Level)
	}
	if err := c.Thresholds.Scoring().Validate(); err != nil {
		return fmt.Errorf("invalid thresholds: %w", err)
	}
	return nil
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return out, nil
}

// WriteFile writes the config to path, refusing to overwrite an existing
// file unless force is set.
func (c *Config) WriteFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
