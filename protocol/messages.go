// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"fmt"

	"github.com/timeflow-foundation/timeflow/lib/codec"
	"github.com/timeflow-foundation/timeflow/timectrl"
)

// Version is the protocol version this build speaks.
const Version = 2

// MinAuthorityVersion is the lowest authority protocol version a
// requester will send to. Older authorities predate the request
// messages entirely; sending to one would silently vanish.
const MinAuthorityVersion = 2

// Kind tags a wire envelope. Kind strings are the compatibility
// surface between participants and must not change once shipped.
type Kind string

const (
	// KindToggleFreezeRequest asks the authority to toggle freeze.
	KindToggleFreezeRequest Kind = "toggle_freeze_request"

	// KindChangeIntervalRequest asks the authority to adjust the tick
	// interval setting.
	KindChangeIntervalRequest Kind = "change_interval_request"

	// KindRequestDenied tells a requester its request was rejected.
	KindRequestDenied Kind = "request_denied"

	// KindIntervalChanged announces the new interval to all
	// participants.
	KindIntervalChanged Kind = "interval_changed"

	// KindFreezeChanged announces the new freeze decision to all
	// participants.
	KindFreezeChanged Kind = "freeze_changed"
)

// Envelope is the outer wire frame. Payload holds the kind-specific
// body, decoded only after Kind-based routing. Envelopes are
// immutable once created: sent once, consumed once, never retried.
type Envelope struct {
	Kind    Kind                  `cbor:"kind"`
	Origin  timectrl.ParticipantID `cbor:"origin"`
	Payload codec.RawMessage      `cbor:"payload,omitempty"`
}

// ChangeIntervalRequest asks the authority to adjust the interval by
// Delta milliseconds in the given direction.
type ChangeIntervalRequest struct {
	Delta    int  `cbor:"delta"`
	Increase bool `cbor:"increase"`
}

// RequestDenied carries the human-readable denial reason.
type RequestDenied struct {
	Reason string `cbor:"reason"`
}

// IntervalChangedNotice is broadcast after the authority applied an
// interval change. OriginPlayer is the participant whose action
// caused it, so each participant can show an attributed message.
type IntervalChangedNotice struct {
	NewInterval  int                   `cbor:"new_interval"`
	OriginPlayer timectrl.ParticipantID `cbor:"origin_player"`
}

// FreezeChangedNotice is broadcast after the authority applied a
// freeze toggle.
type FreezeChangedNotice struct {
	IsFrozen     bool                  `cbor:"is_frozen"`
	OriginPlayer timectrl.ParticipantID `cbor:"origin_player"`
}

// NewEnvelope encodes body into an envelope of the given kind. A nil
// body produces an envelope with no payload (ToggleFreezeRequest has
// no fields).
func NewEnvelope(kind Kind, origin timectrl.ParticipantID, body any) (Envelope, error) {
	env := Envelope{Kind: kind, Origin: origin}
	if body != nil {
		payload, err := codec.Marshal(body)
		if err != nil {
			return Envelope{}, fmt.Errorf("encoding %s payload: %w", kind, err)
		}
		env.Payload = payload
	}
	return env, nil
}

// DecodePayload decodes an envelope's payload into body.
func DecodePayload(env Envelope, body any) error {
	if err := codec.Unmarshal(env.Payload, body); err != nil {
		return fmt.Errorf("decoding %s payload: %w", env.Kind, err)
	}
	return nil
}
