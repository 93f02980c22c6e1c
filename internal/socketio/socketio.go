// Package socketio decodes the minimal Socket.IO text-frame convention used
// by the site: the two-character tag "42" followed by a JSON array of
// [eventName, ...args]. Binary frames, namespaces and acks are out of scope.
package socketio

import (
	"encoding/json"
	"strings"

	"github.com/DedPeredoz/rustyloot-scraper/internal/model"
)

// eventTag marks a Socket.IO "event" message (engine.io message + socket.io event).
const eventTag = "42"

// Decode parses one WebSocket frame into a SocketEvent. The second return
// value is false for anything that is not a well-formed event message; that
// is the normal case for most traffic and never an error.
func Decode(f model.Frame) (model.SocketEvent, bool) {
	if !strings.HasPrefix(f.Payload, eventTag) {
		return model.SocketEvent{}, false
	}

	var arr []any
	if err := json.Unmarshal([]byte(f.Payload[len(eventTag):]), &arr); err != nil {
		return model.SocketEvent{}, false
	}
	if len(arr) == 0 {
		return model.SocketEvent{}, false
	}

	return model.SocketEvent{
		Direction: f.Direction,
		Name:      arr[0],
		Args:      arr[1:],
	}, true
}
