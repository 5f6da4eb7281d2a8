package config

import (
	"fmt"

	"github.com/spf13/viper"

	"charging_occupancy/internal/analytics"
)

// Occupancy-rate denominator variants.
const (
	VariantBaseline = "baseline" // charging / total
	VariantRefined  = "refined"  // charging / (charging + available)
)

// Raw-event source kinds.
const (
	SourceJSONL  = "jsonl"
	SourceSQLite = "sqlite"
)

// Source describes where raw events are loaded from.
type Source struct {
	Kind        string // jsonl | sqlite
	Dir         string // dump directory for jsonl sources
	DBPath      string // snapshot database for sqlite sources
	SampleFiles int    // max dump files to read (jsonl), max rows (sqlite)
}

// Config is the full runtime configuration, passed explicitly into each
// stage. There is no package-level state.
type Config struct {
	LogLevel          string
	Source            Source
	OutputDir         string
	TopN              int
	PressureThreshold float64
	DowntimeGapHours  int
	RatioVariant      string
	APIPort           string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("source.kind", SourceJSONL)
	v.SetDefault("source.sample_files", 500)
	v.SetDefault("output.dir", "output")
	v.SetDefault("analytics.top_n", analytics.DefaultTopN)
	v.SetDefault("analytics.pressure_threshold", analytics.DefaultPressureThreshold)
	v.SetDefault("analytics.downtime_gap_hours", analytics.DefaultGapHours)
	v.SetDefault("analytics.ratio_variant", VariantBaseline)
	v.SetDefault("api.port", "8080")
}

// Load reads configs/config.yml and returns a validated Config.
func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath("configs") // configs/config.yml
	v.SetConfigName("config")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		LogLevel: v.GetString("log_level"),
		Source: Source{
			Kind:        v.GetString("source.kind"),
			Dir:         v.GetString("source.dir"),
			DBPath:      v.GetString("source.db_path"),
			SampleFiles: v.GetInt("source.sample_files"),
		},
		OutputDir:         v.GetString("output.dir"),
		TopN:              v.GetInt("analytics.top_n"),
		PressureThreshold: v.GetFloat64("analytics.pressure_threshold"),
		DowntimeGapHours:  v.GetInt("analytics.downtime_gap_hours"),
		RatioVariant:      v.GetString("analytics.ratio_variant"),
		APIPort:           v.GetString("api.port"),
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch c.Source.Kind {
	case SourceJSONL, SourceSQLite:
	default:
		return fmt.Errorf("unknown source.kind %q", c.Source.Kind)
	}
	switch c.RatioVariant {
	case VariantBaseline, VariantRefined:
	default:
		return fmt.Errorf("unknown analytics.ratio_variant %q", c.RatioVariant)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("analytics.top_n must be positive, got %d", c.TopN)
	}
	if c.DowntimeGapHours <= 0 {
		return fmt.Errorf("analytics.downtime_gap_hours must be positive, got %d", c.DowntimeGapHours)
	}
	if c.PressureThreshold < 0 || c.PressureThreshold > 1 {
		return fmt.Errorf("analytics.pressure_threshold must be in [0,1], got %v", c.PressureThreshold)
	}
	return nil
}
