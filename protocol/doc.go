// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

// Package protocol implements the authority request/notify exchange.
//
// Exactly one session participant, the authority, may mutate shared
// clock state. Everyone else holds a read-only mirror. A
// non-authority participant wanting to toggle freeze or change the
// tick interval sends a request to the authority; the authority
// validates it, applies it exactly as local input, and broadcasts the
// resulting state tagged with the requester's identity so every
// participant can show an attributed message.
//
// The exchange is deliberately minimal:
//
//   - Requests are fire-and-forget. No timeouts, no retries. A denied
//     or unreachable authority simply never produces a success notice.
//   - Self-originated envelopes (transport echoes) are dropped.
//   - Unknown kinds are dropped, so mixed-version sessions degrade
//     quietly.
//   - A requester checks the authority's existence and protocol
//     version before sending; a missing capability surfaces as a
//     local notice and nothing goes on the wire.
//
// Envelopes are CBOR (lib/codec) with a string kind tag; field names
// and kind strings are the cross-version compatibility surface.
package protocol
