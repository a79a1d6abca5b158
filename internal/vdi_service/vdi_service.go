package vdi_service

import (
	"context"

	"github.com/herdstore/herdstore/internal/cluster_service"
	"github.com/herdstore/herdstore/internal/log_service"
)

// VDIService is the client-side VDI subsystem: lifecycle operations plus
// handle-based block I/O on open volumes.
type VDIService interface {
	Open(ctx context.Context, name string) (*VDI, error)
	Create(ctx context.Context, name string, size uint64) error
	Snapshot(ctx context.Context, name string, tag string) error
	Clone(ctx context.Context, srcName string, srcTag string, dstName string) error
}

type DefaultVDIService struct {
	cluster *cluster_service.Cluster
	ls      log_service.LogService
}

func NewDefaultVDIService(cluster *cluster_service.Cluster, ls log_service.LogService) *DefaultVDIService {
	return &DefaultVDIService{
		cluster: cluster,
		ls:      ls,
	}
}
