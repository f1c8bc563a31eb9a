package websocket

import "encoding/json"

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewMessage encodes a message for the wire.
func NewMessage(action string, payload interface{}) ([]byte, error) {
	return json.Marshal(Message{Action: action, Payload: payload})
}
