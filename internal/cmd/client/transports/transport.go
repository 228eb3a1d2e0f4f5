package transports

import (
	"context"
	"fmt"
)

// Ack mirrors the server's acknowledgement of a recorded event.
type Ack struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
}

// StatusError is returned when the server refuses or fails an event.
type StatusError struct {
	// Code is the HTTP status or gRPC code name that came back.
	Code    string
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %s: %s", e.Code, e.Message)
}

// EventsTransport abstracts the transport used by the CLI (gRPC/HTTP).
type EventsTransport interface {
	// Send submits one JSON-encoded event object.
	Send(ctx context.Context, event []byte) (Ack, error)
}
