// Package chat implements the WebSocket relay for circle chat. It is pure
// fan-out: frames tagged with a circle ID are broadcast to the other peers
// subscribed to the same circle, with no persistence or delivery guarantee.
// Messages relayed here are separate from Message entities persisted over
// the REST API.
package chat

import (
	"encoding/json"
	"sync"
)

// Frame is the wire format exchanged over the chat WebSocket.
type Frame struct {
	Type      string `json:"type"`
	CircleID  int64  `json:"circleId,omitempty"`
	Message   string `json:"message,omitempty"`
	Sender    string `json:"sender,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Frame types.
const (
	FrameJoin = "join"
	FrameChat = "chat"
)

// Peer is one connected client. Writes are serialized through the peer's
// mutex so concurrent broadcasts cannot interleave frames.
type Peer struct {
	id      string
	mu      sync.Mutex
	encoder *json.Encoder
}

// NewPeer wraps a JSON encoder over a client connection.
func NewPeer(id string, encoder *json.Encoder) *Peer {
	return &Peer{id: id, encoder: encoder}
}

// Send writes one frame to the peer.
func (p *Peer) Send(frame Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.encoder.Encode(frame)
}

// Hub tracks which peers are subscribed to which circle room.
type Hub struct {
	mu    sync.Mutex
	rooms map[int64]map[*Peer]struct{}
	// peerRoom remembers each peer's current room so a re-join moves the
	// peer instead of duplicating it.
	peerRoom map[*Peer]int64
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms:    make(map[int64]map[*Peer]struct{}),
		peerRoom: make(map[*Peer]int64),
	}
}

// Join subscribes the peer to a circle room, leaving its previous room if it
// had one.
func (h *Hub) Join(circleID int64, peer *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if previous, ok := h.peerRoom[peer]; ok {
		h.removeLocked(previous, peer)
	}

	room, ok := h.rooms[circleID]
	if !ok {
		room = make(map[*Peer]struct{})
		h.rooms[circleID] = room
	}
	room[peer] = struct{}{}
	h.peerRoom[peer] = circleID
}

// Leave removes the peer from its room, if any.
func (h *Hub) Leave(peer *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if circleID, ok := h.peerRoom[peer]; ok {
		h.removeLocked(circleID, peer)
		delete(h.peerRoom, peer)
	}
}

func (h *Hub) removeLocked(circleID int64, peer *Peer) {
	room, ok := h.rooms[circleID]
	if !ok {
		return
	}
	delete(room, peer)
	if len(room) == 0 {
		delete(h.rooms, circleID)
	}
}

// Room returns the peer's current circle room, or 0 when unsubscribed.
func (h *Hub) Room(peer *Peer) int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.peerRoom[peer]
}

// Broadcast sends the frame to every peer in the circle room except the
// sender. Failed peer writes are skipped; a dead connection is cleaned up by
// its own read loop.
func (h *Hub) Broadcast(circleID int64, frame Frame, sender *Peer) {
	h.mu.Lock()
	peers := make([]*Peer, 0, len(h.rooms[circleID]))
	for peer := range h.rooms[circleID] {
		if peer != sender {
			peers = append(peers, peer)
		}
	}
	h.mu.Unlock()

	for _, peer := range peers {
		_ = peer.Send(frame)
	}
}
