package chat

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"
)

// Handler returns the WebSocket endpoint for the chat relay. Each connection
// runs a read loop handling join and chat frames until the client hangs up.
func Handler(hub *Hub) websocket.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		peer := NewPeer(uuid.New().String(), json.NewEncoder(conn))
		defer func() {
			hub.Leave(peer)
			conn.Close()
		}()

		slog.Debug("Chat peer connected", "peer_id", peer.id, "remote_addr", conn.Request().RemoteAddr)

		decoder := json.NewDecoder(conn)
		for {
			var frame Frame
			if err := decoder.Decode(&frame); err != nil {
				if !errors.Is(err, io.EOF) {
					slog.Debug("Chat peer read failed", "peer_id", peer.id, "error", err)
				}
				return
			}

			switch frame.Type {
			case FrameJoin:
				hub.Join(frame.CircleID, peer)
				slog.Debug("Chat peer joined room", "peer_id", peer.id, "circle_id", frame.CircleID)

			case FrameChat:
				circleID := hub.Room(peer)
				if circleID == 0 {
					// Chat before join has no room to relay to.
					continue
				}
				hub.Broadcast(circleID, Frame{
					Type:      FrameChat,
					CircleID:  circleID,
					Message:   frame.Message,
					Sender:    frame.Sender,
					Timestamp: time.Now().UTC().Format(time.RFC3339),
				}, peer)

			default:
				slog.Debug("Chat peer sent unknown frame", "peer_id", peer.id, "type", frame.Type)
			}
		}
	})
}
