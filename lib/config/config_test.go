// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/timeflow-foundation/timeflow/timectrl"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadFileYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "timeflow.yaml", `
default_interval_ms: 14000
allow_remote_control: true
freeze_zones: [spa, library]
freeze_times: [2200]
pass_out_warning_time: 2550
zone_intervals_ms:
  mines: 21000
scale:
  enabled: true
  seasons: [summer]
  days_of_month: [1, 15]
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.DefaultIntervalMS != 14000 {
		t.Errorf("DefaultIntervalMS: got %d, want 14000", cfg.DefaultIntervalMS)
	}
	if !cfg.AllowRemoteControl {
		t.Error("AllowRemoteControl: got false, want true")
	}
	if len(cfg.FreezeZones) != 2 {
		t.Errorf("FreezeZones: got %v", cfg.FreezeZones)
	}
	if cfg.ZoneIntervalsMS["mines"] != 21000 {
		t.Errorf("ZoneIntervalsMS[mines]: got %d, want 21000", cfg.ZoneIntervalsMS["mines"])
	}
}

func TestLoadFileJSONC(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "timeflow.jsonc", `{
  // freeze time in the spa so soaking costs nothing
  "freeze_zones": ["spa"],
  "default_interval_ms": 9000, // trailing comma below is fine too
  "freeze_times": [2400,],
}`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.DefaultIntervalMS != 9000 {
		t.Errorf("DefaultIntervalMS: got %d, want 9000", cfg.DefaultIntervalMS)
	}
	if len(cfg.FreezeZones) != 1 || cfg.FreezeZones[0] != "spa" {
		t.Errorf("FreezeZones: got %v, want [spa]", cfg.FreezeZones)
	}
	if len(cfg.FreezeTimes) != 1 || cfg.FreezeTimes[0] != 2400 {
		t.Errorf("FreezeTimes: got %v, want [2400]", cfg.FreezeTimes)
	}
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing file loaded without error")
	}
}

func TestLoadUsesEnvironmentVariable(t *testing.T) {
	path := writeFile(t, "timeflow.yaml", "default_interval_ms: 11000\n")
	t.Setenv(EnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultIntervalMS != 11000 {
		t.Errorf("DefaultIntervalMS: got %d, want 11000", cfg.DefaultIntervalMS)
	}
}

func TestLoadWithoutEnvironmentVariableReturnsDefaults(t *testing.T) {
	t.Setenv(EnvVar, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultIntervalMS != timectrl.DefaultIntervalMS {
		t.Errorf("DefaultIntervalMS: got %d, want %d", cfg.DefaultIntervalMS, timectrl.DefaultIntervalMS)
	}
	if cfg.AllowRemoteControl {
		t.Error("AllowRemoteControl defaults to true, want false")
	}
}

func TestValidateCorrectsZeroInterval(t *testing.T) {
	t.Parallel()

	cfg := Config{DefaultIntervalMS: 0}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.DefaultIntervalMS != timectrl.DefaultIntervalMS {
		t.Errorf("corrected interval: got %d, want %d", cfg.DefaultIntervalMS, timectrl.DefaultIntervalMS)
	}
}

func TestValidateRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantSub string
	}{
		{"negative interval", Config{DefaultIntervalMS: -1}, "default_interval_ms"},
		{"negative zone interval", Config{DefaultIntervalMS: 7000, ZoneIntervalsMS: map[string]int{"mines": -5}}, "zone_intervals_ms"},
		{"odd freeze time", Config{DefaultIntervalMS: 7000, FreezeTimes: []int{1234}}, "freeze_times"},
		{"negative pass out time", Config{DefaultIntervalMS: 7000, PassOutWarningTime: -10}, "pass_out_warning_time"},
		{"day out of range", Config{DefaultIntervalMS: 7000, Scale: ScaleConfig{DaysOfMonth: []int{29}}}, "days_of_month"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			cfg := test.cfg
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate accepted an invalid config")
			}
			if !strings.Contains(err.Error(), test.wantSub) {
				t.Errorf("error %q does not mention %q", err, test.wantSub)
			}
		})
	}
}

func TestPolicyFromConfig(t *testing.T) {
	t.Parallel()

	cfg := Config{
		DefaultIntervalMS:  7000,
		FreezeZones:        []string{"spa"},
		FreezeTimes:        []int{2200},
		PassOutWarningTime: 2550,
		ZoneIntervalsMS:    map[string]int{"mines": 21000},
		Scale: ScaleConfig{
			Enabled:     true,
			Seasons:     []string{"summer"},
			DaysOfMonth: []int{15},
		},
	}
	policy := cfg.Policy()

	if !policy.FreezeAtZone("spa") || policy.FreezeAtZone("farm") {
		t.Error("FreezeAtZone does not match configuration")
	}
	if !policy.FreezeAtTime(2200) || policy.FreezeAtTime(2210) {
		t.Error("FreezeAtTime does not match configuration")
	}
	if policy.FreezeBeforePassOut(2540) || !policy.FreezeBeforePassOut(2550) || !policy.FreezeBeforePassOut(2600) {
		t.Error("FreezeBeforePassOut window incorrect")
	}
	if got := policy.MillisecondsPerUnit("mines"); got != 21000 {
		t.Errorf("MillisecondsPerUnit(mines): got %d, want 21000", got)
	}
	if got := policy.MillisecondsPerUnit("farm"); got != 0 {
		t.Errorf("MillisecondsPerUnit(farm): got %d, want 0", got)
	}
	if !policy.ScaleOnDate("summer", 15) {
		t.Error("ScaleOnDate(summer, 15): got false, want true")
	}
	if policy.ScaleOnDate("winter", 15) || policy.ScaleOnDate("summer", 14) {
		t.Error("ScaleOnDate matched a date outside the restriction")
	}
}

func TestPolicyUnrestrictedScale(t *testing.T) {
	t.Parallel()

	cfg := Config{DefaultIntervalMS: 7000, Scale: ScaleConfig{Enabled: true}}
	policy := cfg.Policy()
	if !policy.ScaleOnDate("winter", 7) {
		t.Error("empty season/day lists should mean all dates")
	}
}

func TestPolicyPassOutDisabledAtZero(t *testing.T) {
	t.Parallel()

	cfg := Config{DefaultIntervalMS: 7000}
	if cfg.Policy().FreezeBeforePassOut(2590) {
		t.Error("pass-out freeze active with pass_out_warning_time unset")
	}
}
