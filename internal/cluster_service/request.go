package cluster_service

import (
	"github.com/google/uuid"
	"github.com/herdstore/herdstore/internal/communication"
	"github.com/herdstore/herdstore/internal/log_service"
)

// Request is one pending block read or write. Data aliases the caller's
// buffer and is never copied: the dispatcher fills it on reads and consumes
// it on writes. The queue owns the record from enqueue until the completion
// signal fires; after Submit returns, the record is garbage.
type Request struct {
	ID     string
	VID    uint32
	Data   []byte
	Length uint32
	Offset uint64
	Write  bool

	done   chan struct{}
	result communication.HerdCode
}

func newRequest(vid uint32, buf []byte, offset uint64, write bool) *Request {
	return &Request{
		ID:     uuid.NewString(),
		VID:    vid,
		Data:   buf,
		Length: uint32(len(buf)),
		Offset: offset,
		Write:  write,
		done:   make(chan struct{}),
	}
}

// Complete records the result and fires the one-shot completion signal.
// The dispatcher contract is exactly one Complete per request; a second call
// panics on the closed channel, which is the contract violation surfacing.
func (r *Request) Complete(code communication.HerdCode) {
	r.result = code
	close(r.done)
}

// Submit enqueues one block request and blocks until the dispatcher signals
// completion. There is no timeout and no cancellation: a dispatcher that
// never signals blocks the caller indefinitely.
func (c *Cluster) Submit(vid uint32, buf []byte, offset uint64, write bool) error {
	req := newRequest(vid, buf, offset, write)

	if err := c.enqueue(req); err != nil {
		return err
	}

	c.ls.Debug(log_service.LogEvent{
		Message:  "Block request queued",
		Metadata: map[string]any{"request": req.ID, "vid": req.VID, "write": write, "offset": offset, "length": req.Length},
	})

	<-req.done
	if req.result != communication.CodeOK {
		return communication.NewRemoteError("Submit", req.result)
	}
	return nil
}
