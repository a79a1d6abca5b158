// Package herdlib is the embeddable herdstore client SDK: it wires a
// communicator, the shared cluster connection and the VDI service into one
// handle-oriented API.
package herdlib

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/herdstore/herdstore/internal/cluster_service"
	clusteretcd "github.com/herdstore/herdstore/internal/cluster_service/etcd"
	clustermock "github.com/herdstore/herdstore/internal/cluster_service/inmemory"
	"github.com/herdstore/herdstore/internal/communication"
	grpccomm "github.com/herdstore/herdstore/internal/communication/grpc"
	memcomm "github.com/herdstore/herdstore/internal/communication/inmemory"
	"github.com/herdstore/herdstore/internal/log_service"
	"github.com/herdstore/herdstore/internal/vdi_service"
)

const (
	CommunicatorGRPC     = "grpc"
	CommunicatorInMemory = "inmemory"
)

func DefaultConfig() *Config {
	return &Config{
		Communicator: CommunicatorGRPC,
		Gateway:      "localhost:7000",
		LogLevel:     log_service.InfoLevel,
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return config, nil
}

// HerdClient owns one cluster connection and the VDI service bound to it.
// All VDI handles opened through it share the connection's request queue.
type HerdClient struct {
	cfg     *Config
	ls      log_service.LogService
	comm    communication.Communicator
	cluster *cluster_service.Cluster
	vdi     vdi_service.VDIService

	discovery *clusteretcd.GatewayDiscovery
	mock      *clustermock.InMemoryClusterService
}

func NewHerdClient(ctx context.Context, cfg *Config) (*HerdClient, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "herd-" + uuid.NewString()
	}

	ls, err := buildLogService(cfg)
	if err != nil {
		return nil, err
	}

	c := &HerdClient{cfg: cfg, ls: ls}

	switch cfg.Communicator {
	case CommunicatorInMemory:
		comm := memcomm.NewInMemoryCommunicator("inmemory", ls)
		mock := clustermock.NewInMemoryClusterService(ls)
		if err := comm.Start(mock.Handle); err != nil {
			return nil, err
		}
		c.comm = comm
		c.mock = mock
		c.cluster = cluster_service.NewCluster(comm, comm.Address(), cfg.ClientID, ls)
		c.cluster.StartDispatcher(mock.BlockHandler())

	case CommunicatorGRPC, "":
		gateway := cfg.Gateway
		if len(cfg.Etcd.Endpoints) > 0 {
			discovery, err := clusteretcd.NewGatewayDiscovery(cfg.Etcd.Endpoints, cfg.Etcd.Prefix, ls)
			if err != nil {
				return nil, err
			}
			c.discovery = discovery
			gateway, err = discovery.PickGateway(ctx)
			if err != nil {
				discovery.Close()
				return nil, err
			}
		}
		if gateway == "" {
			return nil, fmt.Errorf("no gateway configured and no etcd endpoints to discover one")
		}
		c.comm = grpccomm.NewGRPCCommunicator("", ls)
		c.cluster = cluster_service.NewCluster(c.comm, gateway, cfg.ClientID, ls)

	default:
		return nil, fmt.Errorf("unknown communicator type %q", cfg.Communicator)
	}

	c.vdi = vdi_service.NewDefaultVDIService(c.cluster, ls)
	return c, nil
}

func buildLogService(cfg *Config) (log_service.LogService, error) {
	if cfg.LogDir != "" {
		ls, err := log_service.NewLocalDiscLogService(cfg.LogDir, cfg.ClientID)
		if err != nil {
			return nil, err
		}
		if cfg.LogLevel != "" {
			ls.SetMinLogLevel(cfg.LogLevel)
		}
		return ls, nil
	}

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return log_service.NewLogrusLogService(logger, cfg.ClientID), nil
}

// StartDispatcher installs the block data path for grpc deployments, where
// the dispatcher's handler is provided by the embedder. The inmemory
// communicator wires its own.
func (c *HerdClient) StartDispatcher(handler cluster_service.RequestHandler) {
	c.cluster.StartDispatcher(handler)
}

func (c *HerdClient) CreateVDI(ctx context.Context, name string, size uint64) error {
	return c.vdi.Create(ctx, name, size)
}

func (c *HerdClient) SnapshotVDI(ctx context.Context, name string, tag string) error {
	return c.vdi.Snapshot(ctx, name, tag)
}

func (c *HerdClient) CloneVDI(ctx context.Context, srcName string, srcTag string, dstName string) error {
	return c.vdi.Clone(ctx, srcName, srcTag, dstName)
}

func (c *HerdClient) OpenVDI(ctx context.Context, name string) (*vdi_service.VDI, error) {
	return c.vdi.Open(ctx, name)
}

func (c *HerdClient) Close() error {
	if c.discovery != nil {
		if err := c.discovery.Close(); err != nil {
			c.ls.Warn(log_service.LogEvent{
				Message:  "Failed to close gateway discovery",
				Metadata: map[string]any{"error": err.Error()},
			})
		}
	}
	return c.cluster.Close()
}
