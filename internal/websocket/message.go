package websocket

// Message is the envelope for frames pushed over the event feed. Action names
// what the payload is, e.g. "event" for an audit event.
type Message struct {
	Action  string `json:"action"`
	Payload any    `json:"payload"`
}
