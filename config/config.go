// Package config loads runtime settings from the environment with viper.
// A .env file, if present, is read by the binaries before Load is called.
package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/warp/shift-premium/generic"
	"github.com/warp/shift-premium/premium"
)

// Config holds all configuration for the application.
type Config struct {
	Port           int    `mapstructure:"PORT"`
	DBPath         string `mapstructure:"DB_PATH"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	DefaultWorkArea     string `mapstructure:"DEFAULT_WORK_AREA"`
	DefaultBaseWage     string `mapstructure:"DEFAULT_BASE_WAGE"`
	DefaultTaxRate      string `mapstructure:"DEFAULT_TAX_RATE"`
	DefaultBreakMinutes int    `mapstructure:"DEFAULT_BREAK_MINUTES"`
	DefaultStartTime    string `mapstructure:"DEFAULT_START_TIME"`
	DefaultEndTime      string `mapstructure:"DEFAULT_END_TIME"`

	RetentionDays     int    `mapstructure:"RETENTION_DAYS"`
	RetentionSchedule string `mapstructure:"RETENTION_SCHEDULE"`
}

var defaults = map[string]any{
	"PORT":                  8080,
	"DB_PATH":               "obpay.db",
	"LOG_LEVEL":             "info",
	"ALLOWED_ORIGINS":       "http://localhost:3000,http://localhost:5173",
	"DEFAULT_WORK_AREA":     "Store",
	"DEFAULT_BASE_WAGE":     "160",
	"DEFAULT_TAX_RATE":      "30",
	"DEFAULT_BREAK_MINUTES": 30,
	"DEFAULT_START_TIME":    "08:00",
	"DEFAULT_END_TIME":      "17:00",
	"RETENTION_DAYS":        400,
	"RETENTION_SCHEDULE":    "0 3 * * *",
}

// Load reads configuration from environment variables, falling back to
// the defaults above.
func Load() (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read configuration: %w", err)
	}
	if _, err := cfg.Preferences(); err != nil {
		return Config{}, err
	}
	if cfg.RetentionDays < 0 {
		return Config{}, fmt.Errorf("RETENTION_DAYS must be >= 0, got %d", cfg.RetentionDays)
	}
	return cfg, nil
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Preferences turns the DEFAULT_* settings into the defaults applied to
// requests that omit fields.
func (c Config) Preferences() (premium.Preferences, error) {
	var (
		p   premium.Preferences
		err error
	)
	if p.Area, err = premium.ParseWorkArea(c.DefaultWorkArea); err != nil {
		return p, fmt.Errorf("DEFAULT_WORK_AREA: %w", err)
	}
	if p.Start, err = generic.ParseClock(c.DefaultStartTime); err != nil {
		return p, fmt.Errorf("DEFAULT_START_TIME: %w", err)
	}
	if p.End, err = generic.ParseClock(c.DefaultEndTime); err != nil {
		return p, fmt.Errorf("DEFAULT_END_TIME: %w", err)
	}
	if p.BaseWage, err = decimal.NewFromString(c.DefaultBaseWage); err != nil {
		return p, fmt.Errorf("DEFAULT_BASE_WAGE: %w", err)
	}
	if p.TaxRate, err = decimal.NewFromString(c.DefaultTaxRate); err != nil {
		return p, fmt.Errorf("DEFAULT_TAX_RATE: %w", err)
	}
	p.BreakMinutes = c.DefaultBreakMinutes

	probe := premium.Shift{
		Area: p.Area, Start: p.Start, End: p.End,
		BreakMinutes: p.BreakMinutes, BaseWage: p.BaseWage, TaxRate: p.TaxRate,
	}
	if err := probe.Validate(); err != nil {
		return p, fmt.Errorf("default preferences: %w", err)
	}
	return p, nil
}
