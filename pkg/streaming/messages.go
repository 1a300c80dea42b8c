package streaming

import (
	"encoding/json"

	"github.com/AndrewAXue/libmelee/pkg/core"
)

// Message type constants matching the streaming protocol.
const (
	TypeStartSession = "start_session"
	TypeEndSession   = "end_session"
	TypeGameFrame    = "game_frame"
	TypeMenuFrame    = "menu_frame"
)

// Envelope wraps all messages sent over the WebSocket.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AckMessage is the server's acknowledgement response.
type AckMessage struct {
	Type string `json:"type"` // always "ack"
	For  string `json:"for"`  // the message type being acknowledged
}

// StartSessionPayload carries session metadata.
type StartSessionPayload struct {
	Meta *core.SessionMeta `json:"meta"`
}
