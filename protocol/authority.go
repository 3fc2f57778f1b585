// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"log/slog"

	"github.com/timeflow-foundation/timeflow/timectrl"
)

// Sender delivers envelopes to session participants. Implementations
// are fire-and-forget: a failed delivery is logged by the caller and
// never retried.
type Sender interface {
	// SendTo delivers an envelope to one participant.
	SendTo(id timectrl.ParticipantID, env Envelope) error

	// Broadcast delivers an envelope to every other participant.
	Broadcast(env Envelope) error
}

// AuthorityOptions configures an Authority.
type AuthorityOptions struct {
	// Self is this participant's identity. Required.
	Self timectrl.ParticipantID

	// Controller owns the shared clock state. Required.
	Controller *timectrl.Controller

	// Sender delivers replies and broadcasts. Required.
	Sender Sender

	// Context returns the current clock context, for applying
	// requests between ticks. Required.
	Context func() timectrl.ClockContext

	// AllowRemote reports whether remote participants may control
	// the clock. Consulted per request so a config reload takes
	// effect without restarting the session.
	AllowRemote func() bool

	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Authority is the message handler on the single participant allowed
// to mutate shared clock state. Requests from other participants are
// validated, applied exactly as local input, and answered with a
// broadcast notice attributed to the requester.
type Authority struct {
	self        timectrl.ParticipantID
	controller  *timectrl.Controller
	sender      Sender
	context     func() timectrl.ClockContext
	allowRemote func() bool
	logger      *slog.Logger
}

// NewAuthority returns an Authority.
func NewAuthority(opts AuthorityOptions) *Authority {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	allowRemote := opts.AllowRemote
	if allowRemote == nil {
		allowRemote = func() bool { return false }
	}
	return &Authority{
		self:        opts.Self,
		controller:  opts.Controller,
		sender:      opts.Sender,
		context:     opts.Context,
		allowRemote: allowRemote,
		logger:      logger,
	}
}

// HandleEnvelope processes one received envelope. Self-originated
// envelopes (echoes of this participant's own broadcasts) are dropped
// silently; unknown kinds are dropped with a debug log line so a
// newer participant's messages degrade quietly.
func (a *Authority) HandleEnvelope(env Envelope) {
	if env.Origin == a.self {
		return
	}

	switch env.Kind {
	case KindToggleFreezeRequest:
		if !a.authorize(env, "toggle freeze") {
			return
		}
		frozen := a.controller.ToggleFreeze(a.context(), env.Origin)
		a.broadcast(KindFreezeChanged, FreezeChangedNotice{
			IsFrozen:     frozen,
			OriginPlayer: env.Origin,
		})

	case KindChangeIntervalRequest:
		if !a.authorize(env, "change interval") {
			return
		}
		var req ChangeIntervalRequest
		if err := DecodePayload(env, &req); err != nil {
			a.logger.Warn("malformed change interval request dropped",
				"origin", string(env.Origin), "error", err)
			return
		}
		newInterval := a.controller.ChangeInterval(req.Delta, req.Increase, env.Origin)
		a.broadcast(KindIntervalChanged, IntervalChangedNotice{
			NewInterval:  newInterval,
			OriginPlayer: env.Origin,
		})

	default:
		a.logger.Debug("unhandled envelope kind dropped",
			"kind", string(env.Kind), "origin", string(env.Origin))
	}
}

// authorize enforces the remote control policy. A denial sends
// exactly one RequestDenied to the requester, logs the rejected actor
// and action, and leaves shared state untouched.
func (a *Authority) authorize(env Envelope, action string) bool {
	if a.allowRemote() {
		return true
	}

	a.logger.Info("remote request denied",
		"origin", string(env.Origin), "action", action)

	reply, err := NewEnvelope(KindRequestDenied, a.self, RequestDenied{
		Reason: "the host has not enabled remote time control",
	})
	if err != nil {
		a.logger.Warn("encoding deny notice", "error", err)
		return false
	}
	if err := a.sender.SendTo(env.Origin, reply); err != nil {
		a.logger.Warn("sending deny notice", "origin", string(env.Origin), "error", err)
	}
	return false
}

// broadcast encodes and broadcasts a notice. Local observers were
// already notified by the controller when the change was applied.
func (a *Authority) broadcast(kind Kind, body any) {
	env, err := NewEnvelope(kind, a.self, body)
	if err != nil {
		a.logger.Warn("encoding broadcast notice", "kind", string(kind), "error", err)
		return
	}
	if err := a.sender.Broadcast(env); err != nil {
		a.logger.Warn("broadcasting notice", "kind", string(kind), "error", err)
	}
}

// BroadcastLocalFreezeChange announces a freeze toggle the authority
// applied from its own local input.
func (a *Authority) BroadcastLocalFreezeChange(frozen bool) {
	a.broadcast(KindFreezeChanged, FreezeChangedNotice{
		IsFrozen:     frozen,
		OriginPlayer: a.self,
	})
}

// BroadcastLocalIntervalChange announces an interval change the
// authority applied from its own local input.
func (a *Authority) BroadcastLocalIntervalChange(newInterval int) {
	a.broadcast(KindIntervalChanged, IntervalChangedNotice{
		NewInterval:  newInterval,
		OriginPlayer: a.self,
	})
}
