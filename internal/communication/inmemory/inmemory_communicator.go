package inmemory

import (
	"context"
	"sync"

	"github.com/herdstore/herdstore/internal/communication"
	"github.com/herdstore/herdstore/internal/log_service"
)

// InMemoryCommunicator loops every Send back into the registered handler.
// It backs tests and local development, standing in for a real gateway
// connection; the destination address is accepted but ignored.
type InMemoryCommunicator struct {
	address string
	ls      log_service.LogService

	mu      sync.RWMutex
	handler communication.MessageHandler
	stopped bool
}

func NewInMemoryCommunicator(addr string, ls log_service.LogService) *InMemoryCommunicator {
	return &InMemoryCommunicator{
		address: addr,
		ls:      ls,
	}
}

func (c *InMemoryCommunicator) Address() string {
	return c.address
}

func (c *InMemoryCommunicator) Start(handler communication.MessageHandler) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handler = handler
	c.stopped = false
	return nil
}

func (c *InMemoryCommunicator) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	return nil
}

func (c *InMemoryCommunicator) Send(ctx context.Context, to string, msg communication.Message) (*communication.Response, error) {
	c.mu.RLock()
	handler := c.handler
	stopped := c.stopped
	c.mu.RUnlock()

	if stopped || handler == nil {
		return nil, communication.ErrConnectionFailed
	}

	if err := ctx.Err(); err != nil {
		return nil, communication.ErrMessageSendFailed
	}

	resp, err := handler(ctx, msg)
	if err != nil {
		c.ls.Error(log_service.LogEvent{
			Message:  "In-memory handler failed",
			Metadata: map[string]any{"type": msg.Type, "error": err.Error()},
		})
		return nil, communication.ErrMessageSendFailed
	}
	if resp == nil {
		return nil, communication.ErrMessageSendFailed
	}
	return resp, nil
}
