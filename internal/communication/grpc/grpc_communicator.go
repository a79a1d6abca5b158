package grpccomm

import (
	"context"
	"encoding/json"
	"net"
	"reflect"
	"sync"

	clusterpb "github.com/herdstore/herdstore/gen/proto/cluster"
	"github.com/herdstore/herdstore/internal/communication"
	"github.com/herdstore/herdstore/internal/log_service"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type GRPCCommunicator struct {
	listenAddress string
	handler       communication.MessageHandler
	grpcServer    *grpc.Server
	ls            log_service.LogService

	clientLock   sync.RWMutex
	clients      map[string]clusterpb.MessageServiceClient
	payloadTypes map[string]reflect.Type
	stopped      bool
	stopMutex    sync.RWMutex
}

func NewGRPCCommunicator(addr string, ls log_service.LogService) *GRPCCommunicator {
	c := &GRPCCommunicator{
		listenAddress: addr,
		ls:            ls,
		clients:       make(map[string]clusterpb.MessageServiceClient),
		payloadTypes:  make(map[string]reflect.Type),
	}

	// Register default payload types
	c.payloadTypes[communication.MessageTypeLockVDI] = reflect.TypeOf((*communication.LockVDIRequest)(nil)).Elem()
	c.payloadTypes[communication.MessageTypeReleaseVDI] = reflect.TypeOf((*communication.ReleaseVDIRequest)(nil)).Elem()
	c.payloadTypes[communication.MessageTypeGetVDIInfo] = reflect.TypeOf((*communication.GetVDIInfoRequest)(nil)).Elem()
	c.payloadTypes[communication.MessageTypeNewVDI] = reflect.TypeOf((*communication.NewVDIRequest)(nil)).Elem()
	c.payloadTypes[communication.MessageTypeReadObject] = reflect.TypeOf((*communication.ReadObjectRequest)(nil)).Elem()
	c.payloadTypes[communication.MessageTypeWriteObject] = reflect.TypeOf((*communication.WriteObjectRequest)(nil)).Elem()

	return c
}

func (c *GRPCCommunicator) Address() string {
	return c.listenAddress
}

// Start runs the server side of the communicator. A pure client (the usual
// case for this SDK) never calls Start; gateways and the local mock cluster
// do.
func (c *GRPCCommunicator) Start(handler communication.MessageHandler) error {
	c.ls.Info(log_service.LogEvent{
		Message:  "Starting GRPC communicator",
		Metadata: map[string]any{"address": c.listenAddress},
	})

	c.handler = handler
	c.grpcServer = grpc.NewServer()
	clusterpb.RegisterMessageServiceServer(c.grpcServer, &grpcServer{comm: c})

	lis, err := net.Listen("tcp", c.listenAddress)
	if err != nil {
		c.ls.Error(log_service.LogEvent{
			Message:  "Failed to listen on address",
			Metadata: map[string]any{"address": c.listenAddress, "error": err.Error()},
		})
		return communication.ErrGRPCListenFailed
	}

	go func() {
		if err := c.grpcServer.Serve(lis); err != nil {
			c.ls.Error(log_service.LogEvent{
				Message:  "GRPC server error",
				Metadata: map[string]any{"address": c.listenAddress, "error": err.Error()},
			})
		}
	}()
	return nil
}

func (c *GRPCCommunicator) Stop() error {
	c.stopMutex.Lock()
	defer c.stopMutex.Unlock()

	if c.stopped {
		return nil
	}

	if c.grpcServer != nil {
		c.grpcServer.GracefulStop()
	}

	c.stopped = true
	c.ls.Info(log_service.LogEvent{
		Message:  "GRPC communicator stopped",
		Metadata: map[string]any{"address": c.listenAddress},
	})

	return nil
}

func (c *GRPCCommunicator) Send(ctx context.Context, to string, msg communication.Message) (*communication.Response, error) {
	c.ls.Debug(log_service.LogEvent{
		Message:  "Sending GRPC message",
		Metadata: map[string]any{"to": to, "type": msg.Type, "from": msg.From},
	})

	c.clientLock.RLock()
	client, ok := c.clients[to]
	c.clientLock.RUnlock()

	if !ok {
		conn, err := grpc.NewClient(to, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			c.ls.Error(log_service.LogEvent{
				Message:  "Failed to create GRPC client",
				Metadata: map[string]any{"to": to, "error": err.Error()},
			})
			return nil, communication.ErrClientCreateFailed
		}
		client = clusterpb.NewMessageServiceClient(conn)
		c.clientLock.Lock()
		c.clients[to] = client
		c.clientLock.Unlock()
	}

	var payloadBytes []byte
	if msg.Payload != nil {
		var err error
		payloadBytes, err = json.Marshal(msg.Payload)
		if err != nil {
			return nil, communication.ErrPayloadMarshalFailed
		}
	}

	req := &clusterpb.MessageRequest{
		From:    msg.From,
		Type:    msg.Type,
		Payload: payloadBytes,
	}

	resp, err := client.SendMessage(ctx, req)
	if err != nil {
		c.ls.Error(log_service.LogEvent{
			Message:  "Failed to send GRPC message",
			Metadata: map[string]any{"to": to, "type": msg.Type, "error": err.Error()},
		})
		return nil, communication.ErrMessageSendFailed
	}

	return &communication.Response{
		Code:    communication.HerdCode(resp.Code),
		Body:    resp.Body,
		Headers: resp.Headers,
	}, nil
}

type grpcServer struct {
	clusterpb.UnimplementedMessageServiceServer
	comm *GRPCCommunicator
}

func (s *grpcServer) SendMessage(ctx context.Context, req *clusterpb.MessageRequest) (*clusterpb.MessageResponse, error) {
	if s.comm.handler == nil {
		return nil, communication.ErrHandlerNotSet
	}

	msg := communication.Message{
		From: req.From,
		Type: req.Type,
	}

	// Deserialize payload based on registered type
	if req.Payload != nil {
		payloadType, ok := s.comm.payloadTypes[req.Type]
		if !ok {
			return nil, communication.ErrPayloadUnmarshalFailed
		}

		payload := reflect.New(payloadType).Interface()
		if err := json.Unmarshal(req.Payload, payload); err != nil {
			return nil, communication.ErrPayloadUnmarshalFailed
		}

		msg.Payload = reflect.ValueOf(payload).Elem().Interface()
	}

	resp, err := s.comm.handler(ctx, msg)
	if err != nil {
		s.comm.ls.Error(log_service.LogEvent{
			Message:  "Message handler failed",
			Metadata: map[string]any{"type": req.Type, "error": err.Error()},
		})

		return &clusterpb.MessageResponse{
			Code: string(communication.CodeSystemError),
			Body: []byte(err.Error()),
		}, nil
	}

	if resp == nil {
		return &clusterpb.MessageResponse{
			Code: string(communication.CodeSystemError),
			Body: []byte("handler returned nil response"),
		}, nil
	}

	return &clusterpb.MessageResponse{
		Code:    string(resp.Code),
		Body:    resp.Body,
		Headers: resp.Headers,
	}, nil
}
