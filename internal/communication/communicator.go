package communication

import "context"

// Message is one request envelope sent to a herdstore gateway. Payload is a
// typed operation struct from types.go; communicators serialize it to JSON.
type Message struct {
	From    string
	Type    string
	Payload any
}

// Response carries the remote operation outcome. Code is the cluster result
// code embedded in the reply and is independent of transport success: a
// communicator returns a nil error whenever the round trip completed, even if
// Code reports a remote failure.
type Response struct {
	Code    HerdCode
	Body    []byte
	Headers map[string]string
}

type Communicator interface {
	Start(handler MessageHandler) error
	Stop() error
	Send(ctx context.Context, to string, msg Message) (*Response, error)
	Address() string
}
