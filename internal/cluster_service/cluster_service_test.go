package cluster_service

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/herdstore/herdstore/internal/communication"
	"github.com/herdstore/herdstore/internal/log_service"
)

// fakeCommunicator is a scriptable transport for tests that never leave the
// process.
type fakeCommunicator struct {
	sendFn func(ctx context.Context, to string, msg communication.Message) (*communication.Response, error)
}

func (f *fakeCommunicator) Start(handler communication.MessageHandler) error { return nil }
func (f *fakeCommunicator) Stop() error                                      { return nil }
func (f *fakeCommunicator) Address() string                                  { return "fake" }

func (f *fakeCommunicator) Send(ctx context.Context, to string, msg communication.Message) (*communication.Response, error) {
	if f.sendFn == nil {
		return &communication.Response{Code: communication.CodeOK}, nil
	}
	return f.sendFn(ctx, to, msg)
}

func quietLogService() log_service.LogService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return log_service.NewLogrusLogService(logger, "test")
}

func newTestCluster() *Cluster {
	return NewCluster(&fakeCommunicator{}, "fake", "client-a", quietLogService())
}

func TestCluster_RunRequest(t *testing.T) {
	tests := []struct {
		name     string
		sendFn   func(ctx context.Context, to string, msg communication.Message) (*communication.Response, error)
		wantErr  error
		wantCode communication.HerdCode
	}{
		{
			name: "successful round trip",
			sendFn: func(ctx context.Context, to string, msg communication.Message) (*communication.Response, error) {
				return &communication.Response{Code: communication.CodeOK}, nil
			},
			wantCode: communication.CodeOK,
		},
		{
			name: "remote result code delivered verbatim",
			sendFn: func(ctx context.Context, to string, msg communication.Message) (*communication.Response, error) {
				return &communication.Response{Code: communication.CodeNoVDI}, nil
			},
			wantCode: communication.CodeNoVDI,
		},
		{
			name: "transport failure wrapped as transport error",
			sendFn: func(ctx context.Context, to string, msg communication.Message) (*communication.Response, error) {
				return nil, communication.ErrConnectionFailed
			},
			wantErr: &communication.HerdError{Kind: communication.KindTransport},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCluster(&fakeCommunicator{sendFn: tt.sendFn}, "fake", "client-a", quietLogService())

			resp, err := c.RunRequest(context.Background(), communication.MessageTypeGetVDIInfo, communication.GetVDIInfoRequest{Name: "vol0"})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("RunRequest() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("RunRequest() error = %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("RunRequest() code = %v, want %v", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestCluster_DispatchFIFOOrder(t *testing.T) {
	c := newTestCluster()

	// Queue everything before the dispatcher exists so the drain order is
	// exactly the submission order.
	const n = 32
	reqs := make([]*Request, n)
	for i := range reqs {
		reqs[i] = newRequest(uint32(i+1), make([]byte, 8), 0, false)
		if err := c.enqueue(reqs[i]); err != nil {
			t.Fatalf("enqueue() error = %v", err)
		}
	}

	var mu sync.Mutex
	var order []uint32
	c.StartDispatcher(func(req *Request) communication.HerdCode {
		mu.Lock()
		order = append(order, req.VID)
		mu.Unlock()
		return communication.CodeOK
	})

	for i, req := range reqs {
		select {
		case <-req.done:
		case <-time.After(5 * time.Second):
			t.Fatalf("request %d never completed", i)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != n {
		t.Fatalf("dispatched %d requests, want %d", len(order), n)
	}
	for i, vid := range order {
		if vid != uint32(i+1) {
			t.Fatalf("dispatch order[%d] = vid %d, want %d", i, vid, i+1)
		}
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestCluster_SubmitConcurrent(t *testing.T) {
	c := newTestCluster()

	// The handler stamps every request with a result derived from its own
	// vid: the completion code and the buffer content both differ per
	// request, so a completion delivered to the wrong submitter is visible.
	c.StartDispatcher(func(req *Request) communication.HerdCode {
		binary.LittleEndian.PutUint32(req.Data, req.VID)
		if req.VID%2 == 0 {
			return communication.CodeEIO
		}
		return communication.CodeOK
	})
	defer c.Close()

	type outcome struct {
		vid uint32
		got uint32
		err error
	}

	const workers = 16
	outcomes := make(chan outcome, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(vid uint32) {
			defer wg.Done()
			buf := make([]byte, 8)
			err := c.Submit(vid, buf, 0, false)
			outcomes <- outcome{vid: vid, got: binary.LittleEndian.Uint32(buf), err: err}
		}(uint32(i + 1))
	}
	wg.Wait()
	close(outcomes)

	for o := range outcomes {
		if o.got != o.vid {
			t.Errorf("submitter for vid %d got buffer stamped %d", o.vid, o.got)
		}
		if o.vid%2 == 0 {
			if !errors.Is(o.err, &communication.HerdError{Kind: communication.KindRemote, Code: communication.CodeEIO}) {
				t.Errorf("Submit(vid %d) error = %v, want remote %v", o.vid, o.err, communication.CodeEIO)
			}
		} else if o.err != nil {
			t.Errorf("Submit(vid %d) error = %v", o.vid, o.err)
		}
	}
}

func TestCluster_SubmitRemoteFailure(t *testing.T) {
	c := newTestCluster()
	c.StartDispatcher(func(req *Request) communication.HerdCode {
		return communication.CodeEIO
	})
	defer c.Close()

	err := c.Submit(1, make([]byte, 8), 0, true)
	if !errors.Is(err, &communication.HerdError{Kind: communication.KindRemote, Code: communication.CodeEIO}) {
		t.Errorf("Submit() error = %v, want remote %v", err, communication.CodeEIO)
	}
}

func TestCluster_SubmitAfterClose(t *testing.T) {
	c := newTestCluster()
	c.StartDispatcher(func(req *Request) communication.HerdCode {
		return communication.CodeOK
	})
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	err := c.Submit(1, make([]byte, 8), 0, false)
	if !errors.Is(err, &communication.HerdError{Kind: communication.KindValidation, Code: communication.CodeSystemError}) {
		t.Errorf("Submit() after Close error = %v, want validation %v", err, communication.CodeSystemError)
	}
}

func TestDispatcher_DrainsPendingOnStop(t *testing.T) {
	c := newTestCluster()

	req := newRequest(1, make([]byte, 8), 0, false)
	if err := c.enqueue(req); err != nil {
		t.Fatalf("enqueue() error = %v", err)
	}

	// A dispatcher stopped immediately after start must still complete
	// what was already queued.
	c.StartDispatcher(func(r *Request) communication.HerdCode {
		return communication.CodeOK
	})
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	select {
	case <-req.done:
	case <-time.After(5 * time.Second):
		t.Fatal("queued request was dropped on stop")
	}
	if req.result != communication.CodeOK {
		t.Errorf("drained request result = %v, want %v", req.result, communication.CodeOK)
	}
}

func TestRequest_CompleteIsOneShot(t *testing.T) {
	req := newRequest(1, make([]byte, 8), 0, false)
	req.Complete(communication.CodeOK)

	defer func() {
		if recover() == nil {
			t.Errorf("second Complete() did not panic")
		}
	}()
	req.Complete(communication.CodeOK)
}
