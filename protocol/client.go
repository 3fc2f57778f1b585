// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"log/slog"

	"github.com/timeflow-foundation/timeflow/timectrl"
)

// Client is the message handler on a non-authority participant. It
// drives the local read-only mirror of shared clock state from the
// authority's notices and surfaces deny notices to the player.
type Client struct {
	self       timectrl.ParticipantID
	controller *timectrl.Controller
	notifier   timectrl.Notifier
	logger     *slog.Logger
}

// ClientOptions configures a Client.
type ClientOptions struct {
	// Self is this participant's identity. Required.
	Self timectrl.ParticipantID

	// Controller holds the local mirror state. Required.
	Controller *timectrl.Controller

	// Notifier surfaces deny notices. If nil, notices are discarded.
	Notifier timectrl.Notifier

	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// NewClient returns a Client.
func NewClient(opts ClientOptions) *Client {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = timectrl.NopNotifier{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		self:       opts.Self,
		controller: opts.Controller,
		notifier:   notifier,
		logger:     logger,
	}
}

// HandleEnvelope processes one received envelope. Self-originated
// envelopes and unknown kinds are dropped silently.
func (c *Client) HandleEnvelope(env Envelope) {
	if env.Origin == c.self {
		return
	}

	switch env.Kind {
	case KindIntervalChanged:
		var notice IntervalChangedNotice
		if err := DecodePayload(env, &notice); err != nil {
			c.logger.Warn("malformed interval notice dropped", "error", err)
			return
		}
		c.controller.ApplyIntervalNotice(notice.NewInterval, notice.OriginPlayer)

	case KindFreezeChanged:
		var notice FreezeChangedNotice
		if err := DecodePayload(env, &notice); err != nil {
			c.logger.Warn("malformed freeze notice dropped", "error", err)
			return
		}
		c.controller.ApplyFreezeNotice(notice.IsFrozen, notice.OriginPlayer)

	case KindRequestDenied:
		var denial RequestDenied
		if err := DecodePayload(env, &denial); err != nil {
			c.logger.Warn("malformed deny notice dropped", "error", err)
			return
		}
		c.notifier.AccessDenied(denial.Reason)

	default:
		c.logger.Debug("unhandled envelope kind dropped",
			"kind", string(env.Kind), "origin", string(env.Origin))
	}
}
