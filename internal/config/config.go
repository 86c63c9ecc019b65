package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/crewload/crewload/internal/workload"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultStandardHours     = 40.0
	DefaultOtherTasksMinutes = 92.0
	DefaultPrimaryPercentage = 0.5

	DefaultUnderSaturatedMax = 90.0
	DefaultNormalMin         = 90.0
	DefaultNormalMax         = 110.0
	DefaultOverSaturatedMin  = 110.0
)

// Config is the analysis configuration. Fields map 1:1 to config.yaml.
// A Config is loaded once per run and treated as read-only while a
// calculation is in flight; editing workflows write a new file and rely
// on Watch (or the next run) to pick it up.
type Config struct {
	// StandardHoursPerWeek is the standard work week in hours.
	StandardHoursPerWeek float64 `yaml:"standard_hours_per_week"`

	// OtherTasks is the flat weekly overhead applied to every member.
	OtherTasks OtherTasksConfig `yaml:"other_tasks"`

	// PrimaryResponsibility is the extra overhead for designated members.
	PrimaryResponsibility PrimaryConfig `yaml:"primary_responsibility"`

	// SaturationThresholds are the status bucket boundaries.
	SaturationThresholds ThresholdsConfig `yaml:"saturation_thresholds"`
}

// OtherTasksConfig configures the flat per-member weekly overhead.
type OtherTasksConfig struct {
	Enabled bool `yaml:"enabled"`

	// WeeklyMinutesPerPerson is the overhead in minutes per week.
	WeeklyMinutesPerPerson float64 `yaml:"weekly_minutes_per_person"`
}

// PrimaryConfig configures the primary-responsibility overhead.
type PrimaryConfig struct {
	Enabled bool `yaml:"enabled"`

	// WeeklyPercentage, in [0,1], is multiplied by the standard week to
	// get the overhead hours (0.5 × 40h = 20h).
	WeeklyPercentage float64 `yaml:"weekly_percentage"`

	// Members lists the identifiers that receive this overhead.
	Members []string `yaml:"members"`
}

// ThresholdsConfig holds the four saturation boundaries as percentages.
type ThresholdsConfig struct {
	UnderSaturatedMax float64 `yaml:"under_saturated_max"`
	NormalMin         float64 `yaml:"normal_min"`
	NormalMax         float64 `yaml:"normal_max"`
	OverSaturatedMin  float64 `yaml:"over_saturated_min"`
}

// ConfigError reports an invalid configuration. Field names the
// offending key in config-file notation.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Msg)
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults; an invalid
// configuration is rejected here, never silently coerced.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns a Config pre-populated with the stock settings.
func Default() *Config {
	return &Config{
		StandardHoursPerWeek: DefaultStandardHours,
		OtherTasks: OtherTasksConfig{
			Enabled:                true,
			WeeklyMinutesPerPerson: DefaultOtherTasksMinutes,
		},
		PrimaryResponsibility: PrimaryConfig{
			Enabled:          true,
			WeeklyPercentage: DefaultPrimaryPercentage,
		},
		SaturationThresholds: ThresholdsConfig{
			UnderSaturatedMax: DefaultUnderSaturatedMax,
			NormalMin:         DefaultNormalMin,
			NormalMax:         DefaultNormalMax,
			OverSaturatedMin:  DefaultOverSaturatedMin,
		},
	}
}

// Validate checks required fields and structural constraints.
func (c *Config) Validate() error {
	if c.StandardHoursPerWeek <= 0 {
		return &ConfigError{Field: "standard_hours_per_week", Msg: "must be positive"}
	}
	if c.StandardHoursPerWeek > 168 {
		return &ConfigError{Field: "standard_hours_per_week", Msg: "cannot exceed 168 (hours in a week)"}
	}
	if c.OtherTasks.WeeklyMinutesPerPerson < 0 {
		return &ConfigError{Field: "other_tasks.weekly_minutes_per_person", Msg: "must be non-negative"}
	}
	if p := c.PrimaryResponsibility.WeeklyPercentage; p < 0 || p > 1 {
		return &ConfigError{Field: "primary_responsibility.weekly_percentage", Msg: "must be in [0, 1]"}
	}

	t := c.SaturationThresholds
	if t.UnderSaturatedMax < 0 || t.NormalMin < 0 || t.NormalMax < 0 || t.OverSaturatedMin < 0 {
		return &ConfigError{Field: "saturation_thresholds", Msg: "thresholds must be non-negative"}
	}
	if !(t.UnderSaturatedMax <= t.NormalMin && t.NormalMin <= t.NormalMax && t.NormalMax <= t.OverSaturatedMin) {
		return &ConfigError{
			Field: "saturation_thresholds",
			Msg:   "must satisfy under_saturated_max <= normal_min <= normal_max <= over_saturated_min",
		}
	}
	return nil
}

// OtherTasksHours returns the flat weekly overhead in hours, or 0 when
// the other-tasks overhead is disabled.
func (c *Config) OtherTasksHours() float64 {
	if !c.OtherTasks.Enabled {
		return 0
	}
	return c.OtherTasks.WeeklyMinutesPerPerson / 60
}

// PrimaryHours returns the primary-responsibility overhead in hours, or
// 0 when disabled.
func (c *Config) PrimaryHours() float64 {
	if !c.PrimaryResponsibility.Enabled {
		return 0
	}
	return c.StandardHoursPerWeek * c.PrimaryResponsibility.WeeklyPercentage
}

// Params converts the configuration into the calculator's parameter
// snapshot.
func (c *Config) Params() workload.Params {
	primary := make(map[string]bool, len(c.PrimaryResponsibility.Members))
	for _, m := range c.PrimaryResponsibility.Members {
		primary[m] = true
	}
	return workload.Params{
		StandardHours:   c.StandardHoursPerWeek,
		OtherTasksHours: c.OtherTasksHours(),
		PrimaryHours:    c.PrimaryHours(),
		PrimaryMembers:  primary,
		Thresholds: workload.Thresholds{
			UnderSaturatedMax: c.SaturationThresholds.UnderSaturatedMax,
			NormalMin:         c.SaturationThresholds.NormalMin,
			NormalMax:         c.SaturationThresholds.NormalMax,
			OverSaturatedMin:  c.SaturationThresholds.OverSaturatedMin,
		},
	}
}
