// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

// Timeflow-sim runs a self-contained clock-control session against the
// simulated host: an authority participant drives the host clock under
// a timectrl.Controller, and a scripted guest participant sends remote
// requests over the in-memory session hub. Every decision the
// controller makes is visible as structured log output, which makes
// the binary useful both as a demo and as a manual smoke test for
// policy files.
//
// A policy file is picked up from --config, from TIMEFLOW_CONFIG, or
// built-in defaults, in that order.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/timeflow-foundation/timeflow/hostsim"
	"github.com/timeflow-foundation/timeflow/lib/clock"
	"github.com/timeflow-foundation/timeflow/lib/config"
	"github.com/timeflow-foundation/timeflow/protocol"
	"github.com/timeflow-foundation/timeflow/timectrl"
	"github.com/timeflow-foundation/timeflow/transport"
)

// frameMS approximates one tick of the host's ~60 Hz loop.
const frameMS = 17

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		zone       string
		ticks      int
		days       int
		realTime   bool
		verbose    bool
	)
	flagSet := pflag.NewFlagSet("timeflow-sim", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "policy file (YAML or JSONC); overrides TIMEFLOW_CONFIG")
	flagSet.StringVar(&zone, "zone", "farm", "zone the session starts in")
	flagSet.IntVar(&ticks, "ticks", 0, "stop after this many ticks (0: run whole days)")
	flagSet.IntVar(&days, "days", 1, "simulated days to run when --ticks is 0")
	flagSet.BoolVar(&realTime, "real-time", false, "pace the loop at 60 Hz wall time instead of running flat out")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log per-tick controller decisions")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger.Info("policy loaded",
		"default_interval_ms", cfg.DefaultIntervalMS,
		"allow_remote_control", cfg.AllowRemoteControl,
		"freeze_zones", len(cfg.FreezeZones),
		"scaling", cfg.Scale.Enabled)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session := newSession(cfg, timectrl.ZoneID(zone), logger)
	return session.run(ctx, ticks, days, realTime)
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// session wires an authority participant and one scripted guest over
// the in-memory hub. Both keep their own controller: the authority's
// is wired to the live host, the guest's is a mirror updated from
// broadcast notices.
type session struct {
	logger *slog.Logger

	host       *hostsim.Host
	controller *timectrl.Controller
	authority  *protocol.Authority
	hostPeer   *transport.MemoryPeer

	guestMirror *timectrl.Controller
	requester   *protocol.Requester
	client      *protocol.Client
	guestPeer   *transport.MemoryPeer
}

func newSession(cfg config.Config, zone timectrl.ZoneID, logger *slog.Logger) *session {
	hub := transport.NewMemoryHub()
	hostPeer := hub.Join("host-player", protocol.Version, true)
	guestPeer := hub.Join("guest-player", protocol.Version, false)

	host := hostsim.New(zone)
	controller := timectrl.New(timectrl.Options{
		Policy:          cfg.Policy(),
		Host:            host,
		Notifier:        timectrl.SlogNotifier{Logger: logger.With("participant", "host-player")},
		InitialInterval: cfg.DefaultIntervalMS,
		Logger:          logger.With("participant", "host-player"),
	})

	authority := protocol.NewAuthority(protocol.AuthorityOptions{
		Self:        "host-player",
		Controller:  controller,
		Sender:      hostPeer,
		Context:     func() timectrl.ClockContext { return host.Context(frameMS) },
		AllowRemote: func() bool { return cfg.AllowRemoteControl },
		Logger:      logger.With("participant", "host-player"),
	})

	// The guest mirror tracks displayed state only; its host is a
	// detached copy that nothing advances.
	guestLogger := logger.With("participant", "guest-player")
	guestMirror := timectrl.New(timectrl.Options{
		Policy:          cfg.Policy(),
		Host:            hostsim.New(zone),
		Notifier:        timectrl.SlogNotifier{Logger: guestLogger},
		InitialInterval: cfg.DefaultIntervalMS,
		Logger:          guestLogger,
	})
	requester := protocol.NewRequester(protocol.RequesterOptions{
		Self:      "guest-player",
		Sender:    guestPeer,
		Authority: hub.Authority,
		Notifier:  timectrl.SlogNotifier{Logger: guestLogger},
		Logger:    guestLogger,
	})
	client := protocol.NewClient(protocol.ClientOptions{
		Self:       "guest-player",
		Controller: guestMirror,
		Notifier:   timectrl.SlogNotifier{Logger: guestLogger},
		Logger:     guestLogger,
	})

	return &session{
		logger:      logger,
		host:        host,
		controller:  controller,
		authority:   authority,
		hostPeer:    hostPeer,
		guestMirror: guestMirror,
		requester:   requester,
		client:      client,
		guestPeer:   guestPeer,
	}
}

func (s *session) run(ctx context.Context, maxTicks, days int, realTime bool) error {
	lastDisplayed := s.host.TimeOfDay
	daysDone := 0

	driver := hostsim.NewDriver(hostsim.DriverOptions{
		Host:       s.host,
		Controller: s.controller,
		Clock:      clock.Real(),
		Paced:      realTime,
		OnTick: func(tick int) bool {
			s.pump()
			s.script(tick)

			if s.host.TimeOfDay != lastDisplayed {
				lastDisplayed = s.host.TimeOfDay
				s.logger.Info("clock advanced",
					"time_of_day", s.host.TimeOfDay,
					"day", s.host.Day,
					"interval_ms", s.controller.Interval(),
					"frozen", s.controller.EffectiveFreeze())
			}

			if s.host.TimeOfDay >= hostsim.DayEndTime {
				daysDone++
				s.logger.Info("day complete", "day", s.host.Day, "ticks", tick+1)
				if maxTicks == 0 && daysDone >= days {
					return false
				}
				s.host.StartNextDay()
				lastDisplayed = s.host.TimeOfDay
			}
			return true
		},
	})

	err := driver.Run(ctx, maxTicks)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pump drains both participants' inboxes. In-process delivery means a
// request and its reply can complete within one tick.
func (s *session) pump() {
	for {
		select {
		case env := <-s.hostPeer.Inbox():
			s.authority.HandleEnvelope(env)
		case env := <-s.guestPeer.Inbox():
			s.client.HandleEnvelope(env)
		default:
			return
		}
	}
}

// script fires the guest's canned actions at fixed ticks: slow the
// clock down, speed it back up, then toggle a freeze and release it a
// simulated while later. With remote control disabled in the policy,
// each action surfaces as a denial instead.
func (s *session) script(tick int) {
	switch tick {
	case 600:
		s.requester.RequestIntervalChange(2000, true)
	case 3000:
		s.requester.RequestIntervalChange(2000, false)
	case 5000:
		s.requester.RequestToggleFreeze()
	case 8000:
		s.requester.RequestToggleFreeze()
	}
}
