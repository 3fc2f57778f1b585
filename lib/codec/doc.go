// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides timeflow's standard CBOR encoding configuration.
//
// Timeflow uses two serialization formats with a clear boundary:
//
//   - YAML/JSONC for operator-facing configuration files (lib/config).
//   - CBOR for the session wire protocol: the request and notice
//     envelopes exchanged between participants (protocol, transport).
//
// This package provides the shared CBOR encoding and decoding modes so
// that every participant encodes identically without duplicating
// configuration. The encoder uses Core Deterministic Encoding (RFC
// 8949 §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations (session links):
//
//	encoder := codec.NewEncoder(conn)
//	decoder := codec.NewDecoder(conn)
//
// Wire types carry `cbor` struct tags. The tag names are the
// compatibility surface between participants of different versions
// and must not change once shipped; new fields may be added because
// the decoder ignores unknown fields.
package codec
