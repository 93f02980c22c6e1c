package frames

import (
	"encoding/json"

	"github.com/DedPeredoz/rustyloot-scraper/internal/model"
)

// CDP method names for the two WebSocket frame events we care about.
const (
	MethodFrameReceived = "Network.webSocketFrameReceived"
	MethodFrameSent     = "Network.webSocketFrameSent"
)

// envelope mirrors the performance-log entry shape: an outer object whose
// "message" field carries the network event method and params.
type envelope struct {
	Message struct {
		Method string `json:"method"`
		Params struct {
			Response struct {
				PayloadData string `json:"payloadData"`
			} `json:"response"`
		} `json:"params"`
	} `json:"message"`
}

// Extract filters raw performance-log entries down to WebSocket frames.
// Entries that fail to parse are expected noise from the log source and are
// skipped; all non-WebSocket network events are dropped. Order is preserved.
func Extract(raw []string) []model.Frame {
	var out []model.Frame
	for _, entry := range raw {
		var env envelope
		if err := json.Unmarshal([]byte(entry), &env); err != nil {
			continue // malformed entry, not an error condition
		}
		switch env.Message.Method {
		case MethodFrameReceived:
			out = append(out, model.Frame{Direction: model.In, Payload: env.Message.Params.Response.PayloadData})
		case MethodFrameSent:
			out = append(out, model.Frame{Direction: model.Out, Payload: env.Message.Params.Response.PayloadData})
		}
	}
	return out
}
