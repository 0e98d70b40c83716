package realtime

import (
	"encoding/json"

	"github.com/lalith-99/inventra/internal/models"
)

// Frame types. Clients send join and send; the server answers with the rest.
const (
	FrameJoin            = "join"
	FrameSend            = "send"
	FrameJoined          = "joined"
	FrameMessageReceived = "message_received"
	FrameError           = "error"
)

// InboundFrame is a JSON text frame from a client.
type InboundFrame struct {
	Type        string `json:"type"`
	InventoryID string `json:"inventory_id"`
	Content     string `json:"content,omitempty"`
}

// OutboundFrame is a JSON text frame sent to clients. InventoryID is only
// set on joined frames; message_received carries nothing but the post's
// public projection.
type OutboundFrame struct {
	Type        string           `json:"type"`
	InventoryID string           `json:"inventory_id,omitempty"`
	Post        *models.PostView `json:"post,omitempty"`
	Error       string           `json:"error,omitempty"`
}

func encode(f OutboundFrame) []byte {
	// OutboundFrame holds only strings, a uuid and a time; Marshal cannot fail.
	b, _ := json.Marshal(f)
	return b
}

func errorFrame(msg string) []byte {
	return encode(OutboundFrame{Type: FrameError, Error: msg})
}
