package inmemory

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/herdstore/herdstore/internal/communication"
	"github.com/herdstore/herdstore/internal/log_service"
)

func newTestCommunicator() *InMemoryCommunicator {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewInMemoryCommunicator("inmemory", log_service.NewLogrusLogService(logger, "test"))
}

func TestInMemoryCommunicator_Send(t *testing.T) {
	tests := []struct {
		name    string
		setupFn func(c *InMemoryCommunicator)
		wantErr error
	}{
		{
			name:    "send before start",
			setupFn: nil,
			wantErr: communication.ErrConnectionFailed,
		},
		{
			name: "send after stop",
			setupFn: func(c *InMemoryCommunicator) {
				_ = c.Start(func(ctx context.Context, msg communication.Message) (*communication.Response, error) {
					return &communication.Response{Code: communication.CodeOK}, nil
				})
				_ = c.Stop()
			},
			wantErr: communication.ErrConnectionFailed,
		},
		{
			name: "handler error surfaces as send failure",
			setupFn: func(c *InMemoryCommunicator) {
				_ = c.Start(func(ctx context.Context, msg communication.Message) (*communication.Response, error) {
					return nil, errors.New("handler exploded")
				})
			},
			wantErr: communication.ErrMessageSendFailed,
		},
		{
			name: "successful round trip",
			setupFn: func(c *InMemoryCommunicator) {
				_ = c.Start(func(ctx context.Context, msg communication.Message) (*communication.Response, error) {
					return &communication.Response{Code: communication.CodeOK}, nil
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCommunicator()
			if tt.setupFn != nil {
				tt.setupFn(c)
			}

			resp, err := c.Send(context.Background(), "anywhere", communication.Message{
				From: "client-a",
				Type: communication.MessageTypeGetVDIInfo,
			})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Send() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Send() error = %v", err)
			}
			if resp.Code != communication.CodeOK {
				t.Errorf("Send() code = %v, want %v", resp.Code, communication.CodeOK)
			}
		})
	}
}

func TestInMemoryCommunicator_PayloadPassthrough(t *testing.T) {
	c := newTestCommunicator()

	var got communication.Message
	_ = c.Start(func(ctx context.Context, msg communication.Message) (*communication.Response, error) {
		got = msg
		return &communication.Response{Code: communication.CodeOK}, nil
	})

	payload := communication.LockVDIRequest{Name: "vol0", LockType: communication.LockTypeNormal}
	if _, err := c.Send(context.Background(), "anywhere", communication.Message{
		From:    "client-a",
		Type:    communication.MessageTypeLockVDI,
		Payload: payload,
	}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	// The loopback path hands the payload over typed, no serialization.
	req, ok := got.Payload.(communication.LockVDIRequest)
	if !ok {
		t.Fatalf("handler payload type = %T, want LockVDIRequest", got.Payload)
	}
	if req != payload {
		t.Errorf("handler payload = %+v, want %+v", req, payload)
	}
	if got.From != "client-a" {
		t.Errorf("handler sender = %q, want %q", got.From, "client-a")
	}
}
