package etcd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/herdstore/herdstore/internal/log_service"
	clientv3 "go.etcd.io/etcd/client/v3"
	"golang.org/x/exp/rand"
)

const (
	EtcdDialTimeout = 5 * time.Second
	PrefixGateways  = "/herdstore/gateways/"
)

// Gateway is the record each gateway publishes under PrefixGateways while it
// holds its liveness lease.
type Gateway struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

// GatewayDiscovery resolves live gateway addresses from etcd, for
// deployments where clients are not configured with a static gateway.
type GatewayDiscovery struct {
	client *clientv3.Client
	prefix string
	ls     log_service.LogService
}

func NewGatewayDiscovery(endpoints []string, prefix string, ls log_service.LogService) (*GatewayDiscovery, error) {
	if prefix == "" {
		prefix = PrefixGateways
	}

	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: EtcdDialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to etcd: %w", err)
	}

	return &GatewayDiscovery{
		client: cli,
		prefix: prefix,
		ls:     ls,
	}, nil
}

// Gateways lists every gateway currently registered under the prefix.
func (d *GatewayDiscovery) Gateways(ctx context.Context) ([]Gateway, error) {
	resp, err := d.client.Get(ctx, d.prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("failed to list gateways: %w", err)
	}

	gateways := make([]Gateway, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var gw Gateway
		if err := json.Unmarshal(kv.Value, &gw); err != nil {
			d.ls.Warn(log_service.LogEvent{
				Message:  "Skipping malformed gateway record",
				Metadata: map[string]any{"key": string(kv.Key), "error": err.Error()},
			})
			continue
		}
		gateways = append(gateways, gw)
	}
	return gateways, nil
}

// PickGateway returns the address of a randomly chosen live gateway.
func (d *GatewayDiscovery) PickGateway(ctx context.Context) (string, error) {
	gateways, err := d.Gateways(ctx)
	if err != nil {
		return "", err
	}
	if len(gateways) == 0 {
		return "", fmt.Errorf("no gateways registered under %s", d.prefix)
	}

	gw := gateways[rand.Intn(len(gateways))]
	d.ls.Info(log_service.LogEvent{
		Message:  "Selected gateway",
		Metadata: map[string]any{"id": gw.ID, "address": gw.Address},
	})
	return gw.Address, nil
}

func (d *GatewayDiscovery) Close() error {
	return d.client.Close()
}
