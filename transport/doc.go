// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

// Package transport moves protocol envelopes between session
// participants.
//
// Two mechanisms are provided. [WriteEnvelope] and [ReadEnvelope]
// frame envelopes over any io stream (4-byte big-endian length prefix
// followed by the CBOR body) for sessions linked by the host's own
// transport. [MemoryHub] connects participants in-process with the
// same delivery semantics, for tests and the demo binary.
//
// Delivery is at-most-once and unordered across senders, matching the
// protocol's fire-and-forget contract. Nothing here retries, buffers
// beyond a small inbox, or acknowledges.
package transport
