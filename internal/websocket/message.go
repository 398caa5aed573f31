package websocket

// HeartbeatMessage is the single inbound frame type; clients send one
// periodically while the app is in the foreground.
type HeartbeatMessage struct {
	Presence string `json:"presence"`
}

type AckMessage struct {
	Type     string `json:"type"`
	Presence string `json:"presence"`
}
