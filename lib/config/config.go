// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/timeflow-foundation/timeflow/timectrl"
)

// EnvVar names the environment variable [Load] reads the config path
// from.
const EnvVar = "TIMEFLOW_CONFIG"

// Config is the operator-facing configuration. The zero value is not
// usable; start from [Default].
type Config struct {
	// DefaultIntervalMS is the tick interval setting applied at
	// session start: milliseconds of real time per ten simulated
	// minutes. 7000 matches the host's native rate.
	DefaultIntervalMS int `yaml:"default_interval_ms"`

	// AllowRemoteControl permits non-authority participants to toggle
	// freeze and change the interval through the authority. When
	// false, their requests are denied with a notice.
	AllowRemoteControl bool `yaml:"allow_remote_control"`

	// FreezeZones lists zones in which time freezes automatically.
	FreezeZones []string `yaml:"freeze_zones"`

	// FreezeTimes lists clock values at which time freezes when the
	// clock reaches them (e.g. 2200 for 10pm).
	FreezeTimes []int `yaml:"freeze_times"`

	// PassOutWarningTime is the clock value from which the
	// before-pass-out freeze holds, or 0 to disable it.
	PassOutWarningTime int `yaml:"pass_out_warning_time"`

	// ZoneIntervalsMS overrides the tick interval per zone. A zone
	// absent from the map uses the session interval unchanged.
	ZoneIntervalsMS map[string]int `yaml:"zone_intervals_ms"`

	// Scale configures interval scaling.
	Scale ScaleConfig `yaml:"scale"`
}

// ScaleConfig restricts interval scaling to certain dates. An empty
// Seasons or DaysOfMonth list means "all".
type ScaleConfig struct {
	Enabled     bool     `yaml:"enabled"`
	Seasons     []string `yaml:"seasons"`
	DaysOfMonth []int    `yaml:"days_of_month"`
}

// Default returns the configuration used when no file is given: the
// host's native rate, remote control off, no automatic freezes.
func Default() Config {
	return Config{
		DefaultIntervalMS:  timectrl.DefaultIntervalMS,
		AllowRemoteControl: false,
	}
}

// Load reads the config file named by the TIMEFLOW_CONFIG environment
// variable. There are no fallbacks and no file discovery: an unset
// variable returns [Default], so that configuration is always
// explicit and auditable.
func Load() (Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates a config file. YAML is the primary
// format; .json and .jsonc files are accepted too, with // line
// comments, /* block comments */, and trailing commas stripped before
// parsing (JSON is a YAML subset, so one parser serves both).
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field ranges. A zero DefaultIntervalMS is corrected
// to the host's native rate rather than rejected; negative values and
// malformed clock values are errors.
func (c *Config) Validate() error {
	if c.DefaultIntervalMS < 0 {
		return fmt.Errorf("default_interval_ms must be >= 0, got %d", c.DefaultIntervalMS)
	}
	if c.DefaultIntervalMS == 0 {
		c.DefaultIntervalMS = timectrl.DefaultIntervalMS
	}
	for zone, interval := range c.ZoneIntervalsMS {
		if interval < 0 {
			return fmt.Errorf("zone_intervals_ms[%s] must be >= 0, got %d", zone, interval)
		}
	}
	for _, t := range c.FreezeTimes {
		if t < 0 || t%10 != 0 {
			return fmt.Errorf("freeze_times entry %d is not a valid clock value", t)
		}
	}
	if c.PassOutWarningTime < 0 {
		return fmt.Errorf("pass_out_warning_time must be >= 0, got %d", c.PassOutWarningTime)
	}
	for _, day := range c.Scale.DaysOfMonth {
		if day < 1 || day > 28 {
			return fmt.Errorf("scale.days_of_month entry %d out of range 1..28", day)
		}
	}
	return nil
}
