// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/timeflow-foundation/timeflow/lib/codec"
	"github.com/timeflow-foundation/timeflow/protocol"
)

// frameHeaderLength is the fixed size of a frame header: 4 bytes
// payload length, big-endian.
const frameHeaderLength = 4

// maxFrameLength bounds a frame's CBOR payload. Session envelopes are
// tens of bytes; anything near this limit is a corrupt or hostile
// stream.
const maxFrameLength = 64 * 1024

// WriteEnvelope writes one framed envelope to w. The frame format is
// [4 bytes payload length, big-endian uint32] [CBOR payload].
func WriteEnvelope(w io.Writer, env protocol.Envelope) error {
	payload, err := codec.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding envelope: %w", err)
	}
	var header [frameHeaderLength]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("writing frame header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("writing frame payload: %w", err)
	}
	return nil
}

// ReadEnvelope reads one framed envelope from r. Returns an error if
// the stream is malformed or the payload exceeds maxFrameLength.
func ReadEnvelope(r io.Reader) (protocol.Envelope, error) {
	var header [frameHeaderLength]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return protocol.Envelope{}, fmt.Errorf("reading frame header: %w", err)
	}
	payloadLength := binary.BigEndian.Uint32(header[:])
	if payloadLength > maxFrameLength {
		return protocol.Envelope{}, fmt.Errorf("frame length %d exceeds maximum %d", payloadLength, maxFrameLength)
	}
	payload := make([]byte, payloadLength)
	if _, err := io.ReadFull(r, payload); err != nil {
		return protocol.Envelope{}, fmt.Errorf("reading frame payload: %w", err)
	}
	var env protocol.Envelope
	if err := codec.Unmarshal(payload, &env); err != nil {
		return protocol.Envelope{}, fmt.Errorf("decoding envelope: %w", err)
	}
	return env, nil
}
