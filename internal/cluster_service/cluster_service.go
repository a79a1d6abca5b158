package cluster_service

import (
	"context"
	"sync"

	"github.com/herdstore/herdstore/internal/communication"
	"github.com/herdstore/herdstore/internal/log_service"
)

// Cluster is one shared connection to the herdstore cluster. Every VDI handle
// opened through it shares the communicator, the pending block-request queue
// and the dispatcher. The queue lock is held only while enqueueing or popping,
// never while a caller blocks on completion.
type Cluster struct {
	comm     communication.Communicator
	gateway  string
	clientID string
	ls       log_service.LogService

	queueMu sync.Mutex
	pending []*Request
	notify  chan struct{}
	closed  bool

	dispatcher *Dispatcher
}

func NewCluster(comm communication.Communicator, gateway string, clientID string, ls log_service.LogService) *Cluster {
	return &Cluster{
		comm:     comm,
		gateway:  gateway,
		clientID: clientID,
		ls:       ls,
		notify:   make(chan struct{}, 1),
	}
}

func (c *Cluster) ClientID() string {
	return c.clientID
}

// RunRequest performs one synchronous round trip against the gateway. A
// transport failure comes back as a KindTransport HerdError; any remote
// result code, success or not, is delivered verbatim in the Response.
func (c *Cluster) RunRequest(ctx context.Context, msgType string, payload any) (*communication.Response, error) {
	resp, err := c.comm.Send(ctx, c.gateway, communication.Message{
		From:    c.clientID,
		Type:    msgType,
		Payload: payload,
	})
	if err != nil {
		return nil, communication.NewTransportError(msgType, err)
	}
	return resp, nil
}

// StartDispatcher launches the queue consumer. handler is the block data
// path; block-to-data-object addressing happens behind it, not in this
// package.
func (c *Cluster) StartDispatcher(handler RequestHandler) {
	c.dispatcher = newDispatcher(c, handler, c.ls)
	c.dispatcher.start()
}

// enqueue appends req in FIFO order and wakes the dispatcher. The only local
// failure is submitting against a closed connection.
func (c *Cluster) enqueue(req *Request) error {
	c.queueMu.Lock()
	if c.closed {
		c.queueMu.Unlock()
		return communication.NewValidationError("Submit", communication.CodeSystemError)
	}
	c.pending = append(c.pending, req)
	c.queueMu.Unlock()

	select {
	case c.notify <- struct{}{}:
	default:
	}
	return nil
}

// popFront removes and returns the oldest pending request, or nil.
func (c *Cluster) popFront() *Request {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()

	if len(c.pending) == 0 {
		return nil
	}
	req := c.pending[0]
	c.pending[0] = nil
	c.pending = c.pending[1:]
	return req
}

// Close stops the dispatcher and the communicator. Requests still pending
// when Close is called are never completed; submitters stay blocked, the
// same way a dispatcher that never signals leaves them blocked. Callers are
// expected to quiesce I/O before closing.
func (c *Cluster) Close() error {
	c.queueMu.Lock()
	c.closed = true
	c.queueMu.Unlock()

	if c.dispatcher != nil {
		c.dispatcher.stop()
	}
	return c.comm.Stop()
}
