package websocket

// Event names sent over the lifecycle stream.
const (
	EventLifecycle = "lifecycle"
	EventError     = "error"
)

// LifecycleFrame wraps a lifecycle event for delivery to a connected admin.
type LifecycleFrame struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// ErrorResponse is sent when the stream cannot continue.
type ErrorResponse struct {
	Event string `json:"event"`
	Error string `json:"error"`
}
