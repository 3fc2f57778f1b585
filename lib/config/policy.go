// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package config

import "github.com/timeflow-foundation/timeflow/timectrl"

// Policy converts the configuration into the timectrl.Policy
// collaborator. The returned policy is immutable and cheap to query
// per tick; build a new one after editing the Config (the controller
// swaps policies atomically via ReloadPolicy).
func (c Config) Policy() timectrl.Policy {
	p := &policy{
		freezeZones:   make(map[timectrl.ZoneID]bool, len(c.FreezeZones)),
		freezeTimes:   make(map[int]bool, len(c.FreezeTimes)),
		zoneIntervals: make(map[timectrl.ZoneID]int, len(c.ZoneIntervalsMS)),
		passOutAt:     c.PassOutWarningTime,
		scaleEnabled:  c.Scale.Enabled,
	}
	for _, zone := range c.FreezeZones {
		p.freezeZones[timectrl.ZoneID(zone)] = true
	}
	for _, t := range c.FreezeTimes {
		p.freezeTimes[t] = true
	}
	for zone, interval := range c.ZoneIntervalsMS {
		p.zoneIntervals[timectrl.ZoneID(zone)] = interval
	}
	if len(c.Scale.Seasons) > 0 {
		p.scaleSeasons = make(map[timectrl.Season]bool, len(c.Scale.Seasons))
		for _, season := range c.Scale.Seasons {
			p.scaleSeasons[timectrl.Season(season)] = true
		}
	}
	if len(c.Scale.DaysOfMonth) > 0 {
		p.scaleDays = make(map[int]bool, len(c.Scale.DaysOfMonth))
		for _, day := range c.Scale.DaysOfMonth {
			p.scaleDays[day] = true
		}
	}
	return p
}

type policy struct {
	freezeZones   map[timectrl.ZoneID]bool
	freezeTimes   map[int]bool
	zoneIntervals map[timectrl.ZoneID]int
	passOutAt     int
	scaleEnabled  bool

	// scaleSeasons and scaleDays are nil when unrestricted.
	scaleSeasons map[timectrl.Season]bool
	scaleDays    map[int]bool
}

func (p *policy) FreezeAtZone(zone timectrl.ZoneID) bool {
	return p.freezeZones[zone]
}

func (p *policy) FreezeAtTime(timeOfDay int) bool {
	return p.freezeTimes[timeOfDay]
}

func (p *policy) FreezeBeforePassOut(timeOfDay int) bool {
	return p.passOutAt > 0 && timeOfDay >= p.passOutAt
}

func (p *policy) MillisecondsPerUnit(zone timectrl.ZoneID) int {
	return p.zoneIntervals[zone]
}

func (p *policy) ScaleOnDate(season timectrl.Season, dayOfMonth int) bool {
	if !p.scaleEnabled {
		return false
	}
	if p.scaleSeasons != nil && !p.scaleSeasons[season] {
		return false
	}
	if p.scaleDays != nil && !p.scaleDays[dayOfMonth] {
		return false
	}
	return true
}
