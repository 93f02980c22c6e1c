package model

// Direction tags which side of the WebSocket connection produced a frame.
type Direction string

const (
	In  Direction = "in"  // frame received by the browser
	Out Direction = "out" // frame sent by the browser
)

// Frame represents a single WebSocket frame captured from the browser's
// network event log.
type Frame struct {
	Direction Direction `json:"direction"`
	Payload   string    `json:"payload"`
}

// SocketEvent is a decoded Socket.IO event message: the first element of the
// framed JSON array and everything after it. Name is not asserted to be a
// string; the decoder propagates whatever JSON yields.
type SocketEvent struct {
	Direction Direction `json:"direction"`
	Name      any       `json:"name"`
	Args      []any     `json:"args"`
}

// ItemRecord is one heterogeneous inventory entry as it appears on the wire.
// Field names vary between event shapes, so it stays a raw object.
type ItemRecord = map[string]any
