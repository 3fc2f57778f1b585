// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"fmt"
	"log/slog"

	"github.com/timeflow-foundation/timeflow/timectrl"
)

// AuthorityInfo describes the authority endpoint as seen from a
// non-authority participant.
type AuthorityInfo struct {
	ID      timectrl.ParticipantID
	Version int
}

// RequesterOptions configures a Requester.
type RequesterOptions struct {
	// Self is this participant's identity. Required.
	Self timectrl.ParticipantID

	// Sender delivers requests to the authority. Required.
	Sender Sender

	// Authority returns the current authority endpoint, or false if
	// no authority is reachable. Consulted before every send.
	Authority func() (AuthorityInfo, bool)

	// Notifier surfaces capability-missing notices locally. If nil,
	// notices are discarded.
	Notifier timectrl.Notifier

	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Requester sends clock-control requests from a non-authority
// participant to the authority. Requests are fire-and-forget: there
// are no timeouts, and a denied or unreachable authority simply never
// produces a success notice.
type Requester struct {
	self      timectrl.ParticipantID
	sender    Sender
	authority func() (AuthorityInfo, bool)
	notifier  timectrl.Notifier
	logger    *slog.Logger
}

// NewRequester returns a Requester.
func NewRequester(opts RequesterOptions) *Requester {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = timectrl.NopNotifier{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Requester{
		self:      opts.Self,
		sender:    opts.Sender,
		authority: opts.Authority,
		notifier:  notifier,
		logger:    logger,
	}
}

// RequestToggleFreeze asks the authority to toggle freeze.
func (r *Requester) RequestToggleFreeze() {
	r.send(KindToggleFreezeRequest, nil, "toggle freeze")
}

// RequestIntervalChange asks the authority to adjust the interval by
// delta milliseconds in the given direction.
func (r *Requester) RequestIntervalChange(delta int, increase bool) {
	r.send(KindChangeIntervalRequest, ChangeIntervalRequest{
		Delta:    delta,
		Increase: increase,
	}, "change interval")
}

// send performs the capability check and delivers the request. The
// check short-circuits locally before any network send: a missing or
// too-old authority surfaces as a user notice, and nothing goes on
// the wire.
func (r *Requester) send(kind Kind, body any, action string) {
	info, ok := r.authority()
	if !ok {
		r.notifier.AccessDenied("the host is not running a compatible time controller")
		r.logger.Info("request short-circuited, no authority", "action", action)
		return
	}
	if info.Version < MinAuthorityVersion {
		r.notifier.AccessDenied(fmt.Sprintf(
			"the host's time controller is too old (version %d, need %d or newer)",
			info.Version, MinAuthorityVersion))
		r.logger.Info("request short-circuited, authority too old",
			"action", action, "authority_version", info.Version)
		return
	}

	env, err := NewEnvelope(kind, r.self, body)
	if err != nil {
		r.logger.Warn("encoding request", "action", action, "error", err)
		return
	}
	if err := r.sender.SendTo(info.ID, env); err != nil {
		r.logger.Warn("sending request", "action", action, "error", err)
	}
}
