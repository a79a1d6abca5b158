package cluster_service

import (
	"sync"

	"github.com/herdstore/herdstore/internal/communication"
	"github.com/herdstore/herdstore/internal/log_service"
)

// RequestHandler performs the block I/O for one request and returns the
// cluster result code. Handlers see requests in FIFO submission order and
// may complete them in any order.
type RequestHandler func(req *Request) communication.HerdCode

// Dispatcher drains the connection's pending queue and completes each
// request exactly once.
type Dispatcher struct {
	cluster *Cluster
	handler RequestHandler
	ls      log_service.LogService

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func newDispatcher(c *Cluster, handler RequestHandler, ls log_service.LogService) *Dispatcher {
	return &Dispatcher{
		cluster: c,
		handler: handler,
		ls:      ls,
		stopCh:  make(chan struct{}),
	}
}

func (d *Dispatcher) start() {
	d.wg.Add(1)
	go d.run()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case <-d.stopCh:
			d.drain()
			return
		case <-d.cluster.notify:
			d.drain()
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		req := d.cluster.popFront()
		if req == nil {
			return
		}
		code := d.handler(req)
		if code != communication.CodeOK {
			d.ls.Warn(log_service.LogEvent{
				Message:  "Block request failed",
				Metadata: map[string]any{"request": req.ID, "vid": req.VID, "code": string(code)},
			})
		}
		req.Complete(code)
	}
}

func (d *Dispatcher) stop() {
	close(d.stopCh)
	d.wg.Wait()
}
