// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"fmt"
	"sync"

	"github.com/timeflow-foundation/timeflow/protocol"
	"github.com/timeflow-foundation/timeflow/timectrl"
)

// MemoryHub connects session participants in-process. It backs the
// demo binary's local session and the protocol tests; real sessions
// replace it with framed links over the host's own transport.
type MemoryHub struct {
	mu          sync.Mutex
	peers       map[timectrl.ParticipantID]*MemoryPeer
	authorityID timectrl.ParticipantID
}

// NewMemoryHub returns an empty hub with no authority.
func NewMemoryHub() *MemoryHub {
	return &MemoryHub{peers: make(map[timectrl.ParticipantID]*MemoryPeer)}
}

// Join adds a participant. The first participant joining with
// authority true becomes the session authority. The returned peer's
// Inbox carries envelopes delivered to it; the participant's message
// handler drains it.
func (h *MemoryHub) Join(id timectrl.ParticipantID, version int, authority bool) *MemoryPeer {
	h.mu.Lock()
	defer h.mu.Unlock()

	peer := &MemoryPeer{
		hub:     h,
		id:      id,
		version: version,
		inbox:   make(chan protocol.Envelope, 64),
	}
	h.peers[id] = peer
	if authority && h.authorityID == "" {
		h.authorityID = id
	}
	return peer
}

// Leave removes a participant and closes its inbox. If the authority
// leaves, the session has no authority until another joins as one.
func (h *MemoryHub) Leave(id timectrl.ParticipantID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	peer, ok := h.peers[id]
	if !ok {
		return
	}
	delete(h.peers, id)
	close(peer.inbox)
	if h.authorityID == id {
		h.authorityID = ""
	}
}

// Authority returns the current authority endpoint, or false if none
// is present. Satisfies the requester's capability query.
func (h *MemoryHub) Authority() (protocol.AuthorityInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	peer, ok := h.peers[h.authorityID]
	if !ok {
		return protocol.AuthorityInfo{}, false
	}
	return protocol.AuthorityInfo{ID: peer.id, Version: peer.version}, true
}

// deliver places an envelope in the recipient's inbox. A full inbox
// drops the envelope: session messages are fire-and-forget, and a
// participant that stopped draining is effectively gone.
func (h *MemoryHub) deliver(to timectrl.ParticipantID, env protocol.Envelope) error {
	h.mu.Lock()
	peer, ok := h.peers[to]
	h.mu.Unlock()

	if !ok {
		return fmt.Errorf("participant %q not in session", to)
	}
	select {
	case peer.inbox <- env:
		return nil
	default:
		return fmt.Errorf("participant %q inbox full, envelope dropped", to)
	}
}

// MemoryPeer is one participant's endpoint on a MemoryHub. It
// implements protocol.Sender.
type MemoryPeer struct {
	hub     *MemoryHub
	id      timectrl.ParticipantID
	version int
	inbox   chan protocol.Envelope
}

// ID returns the participant identity this peer was joined with.
func (p *MemoryPeer) ID() timectrl.ParticipantID { return p.id }

// Inbox returns the channel of envelopes delivered to this peer.
func (p *MemoryPeer) Inbox() <-chan protocol.Envelope { return p.inbox }

// SendTo delivers an envelope to one participant.
func (p *MemoryPeer) SendTo(id timectrl.ParticipantID, env protocol.Envelope) error {
	return p.hub.deliver(id, env)
}

// Broadcast delivers an envelope to every participant except the
// sender. Delivery failures to individual participants do not stop
// the rest of the broadcast; the first failure is reported.
func (p *MemoryPeer) Broadcast(env protocol.Envelope) error {
	p.hub.mu.Lock()
	recipients := make([]timectrl.ParticipantID, 0, len(p.hub.peers))
	for id := range p.hub.peers {
		if id != p.id {
			recipients = append(recipients, id)
		}
	}
	p.hub.mu.Unlock()

	var firstErr error
	for _, id := range recipients {
		if err := p.hub.deliver(id, env); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
