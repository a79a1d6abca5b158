package communication

import "context"

// MessageHandler is the server side of a Communicator: gateways and the
// in-memory mock cluster implement it to serve envelope messages.
type MessageHandler func(ctx context.Context, msg Message) (*Response, error)
