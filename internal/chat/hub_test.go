package chat

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func newTestPeer(id string) (*Peer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewPeer(id, json.NewEncoder(&buf)), &buf
}

func frames(t *testing.T, buf *bytes.Buffer) []Frame {
	t.Helper()
	var out []Frame
	decoder := json.NewDecoder(strings.NewReader(buf.String()))
	for decoder.More() {
		var f Frame
		if err := decoder.Decode(&f); err != nil {
			t.Fatalf("decode frame: %v", err)
		}
		out = append(out, f)
	}
	return out
}

func TestBroadcastReachesRoomExceptSender(t *testing.T) {
	hub := NewHub()
	sender, senderBuf := newTestPeer("sender")
	listener, listenerBuf := newTestPeer("listener")
	outsider, outsiderBuf := newTestPeer("outsider")

	hub.Join(1, sender)
	hub.Join(1, listener)
	hub.Join(2, outsider)

	hub.Broadcast(1, Frame{Type: FrameChat, CircleID: 1, Message: "hello", Sender: "sender"}, sender)

	got := frames(t, listenerBuf)
	if len(got) != 1 {
		t.Fatalf("listener received %d frames, want 1", len(got))
	}
	if got[0].Message != "hello" || got[0].CircleID != 1 {
		t.Errorf("frame = %+v", got[0])
	}
	if len(frames(t, senderBuf)) != 0 {
		t.Error("sender received its own broadcast")
	}
	if len(frames(t, outsiderBuf)) != 0 {
		t.Error("peer in another room received the broadcast")
	}
}

func TestJoinMovesPeerBetweenRooms(t *testing.T) {
	hub := NewHub()
	peer, buf := newTestPeer("roamer")
	speaker, _ := newTestPeer("speaker")

	hub.Join(1, peer)
	if got := hub.Room(peer); got != 1 {
		t.Fatalf("Room() = %d, want 1", got)
	}

	// Re-joining another circle moves the peer instead of duplicating it.
	hub.Join(2, peer)
	if got := hub.Room(peer); got != 2 {
		t.Fatalf("Room() after move = %d, want 2", got)
	}

	hub.Join(1, speaker)
	hub.Broadcast(1, Frame{Type: FrameChat, CircleID: 1, Message: "old room"}, speaker)
	if len(frames(t, buf)) != 0 {
		t.Error("peer still receives frames from its previous room")
	}

	hub.Join(2, speaker)
	hub.Broadcast(2, Frame{Type: FrameChat, CircleID: 2, Message: "new room"}, speaker)
	if got := frames(t, buf); len(got) != 1 || got[0].Message != "new room" {
		t.Errorf("frames in new room = %+v, want one 'new room' frame", got)
	}
}

func TestLeave(t *testing.T) {
	hub := NewHub()
	peer, buf := newTestPeer("leaver")
	speaker, _ := newTestPeer("speaker")

	hub.Join(1, peer)
	hub.Join(1, speaker)
	hub.Leave(peer)

	if got := hub.Room(peer); got != 0 {
		t.Errorf("Room() after leave = %d, want 0", got)
	}

	hub.Broadcast(1, Frame{Type: FrameChat, CircleID: 1, Message: "bye"}, speaker)
	if len(frames(t, buf)) != 0 {
		t.Error("left peer still receives broadcasts")
	}

	// Leaving twice is harmless.
	hub.Leave(peer)
}
