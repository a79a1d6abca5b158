package vdi_service

import (
	"context"
	"sync"

	"github.com/herdstore/herdstore/internal/communication"
	"github.com/herdstore/herdstore/internal/log_service"
)

// VDI is one open volume handle. It owns the cluster lock for its name, the
// bound revision id and the cached inode. vid and inode are guarded by mu;
// nothing mutates them after Open, so block I/O only ever takes the read
// side.
type VDI struct {
	name string
	svc  *DefaultVDIService

	mu       sync.RWMutex
	vid      uint32
	inode    *Inode
	closed   bool
	poisoned bool
}

func (v *VDI) Name() string { return v.name }

func (v *VDI) VID() uint32 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.vid
}

func (v *VDI) Size() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.inode == nil {
		return 0
	}
	return v.inode.Size
}

// Open locks the VDI (binding its revision id), reads the full inode and
// returns a ready handle. A name whose resolved revision is itself a
// snapshot can not be opened for block I/O.
func (s *DefaultVDIService) Open(ctx context.Context, name string) (*VDI, error) {
	v := &VDI{name: name, svc: s}

	if err := s.lockVDI(ctx, v); err != nil {
		s.ls.Error(log_service.LogEvent{
			Message:  "Failed to lock VDI",
			Metadata: map[string]any{"name": name, "error": err.Error()},
		})
		return nil, err
	}

	data, err := s.readObject(ctx, VIDToVDIOID(v.vid), InodeSize, 0, false)
	if err != nil {
		s.unlockBestEffort(ctx, v)
		return nil, err
	}

	ino, err := UnmarshalInode(data)
	if err != nil {
		s.unlockBestEffort(ctx, v)
		return nil, err
	}

	if ino.IsSnapshot() {
		s.unlockBestEffort(ctx, v)
		return nil, communication.WrapValidationError("Open", communication.CodeInvalidParams, ErrIsSnapshot)
	}

	v.inode = ino
	return v, nil
}

func (s *DefaultVDIService) unlockBestEffort(ctx context.Context, v *VDI) {
	if err := s.unlockVDI(ctx, v); err != nil {
		s.ls.Warn(log_service.LogEvent{
			Message:  "Failed to unlock VDI during open cleanup",
			Metadata: map[string]any{"name": v.name, "vid": v.vid, "error": err.Error()},
		})
	}
}

// Close releases the distributed lock and the handle's resources. If the
// unlock fails, the failure is returned and the cached inode stays attached;
// the handle is poisoned and must not be reused either way.
func (v *VDI) Close(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed || v.poisoned {
		return communication.WrapValidationError("Close", communication.CodeInvalidParams, ErrHandleClosed)
	}

	if err := v.svc.unlockVDI(ctx, v); err != nil {
		v.poisoned = true
		v.svc.ls.Error(log_service.LogEvent{
			Message:  "Failed to unlock VDI",
			Metadata: map[string]any{"name": v.name, "vid": v.vid, "error": err.Error()},
		})
		return err
	}

	v.closed = true
	v.inode = nil
	return nil
}

// ReadAt reads len(p) bytes at the given volume offset through the shared
// request queue. It blocks until the dispatcher completes the request; there
// is no timeout and no cancellation.
func (v *VDI) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, communication.WrapValidationError("ReadAt", communication.CodeInvalidParams, ErrNegativeOffset)
	}
	vid, err := v.ioVID()
	if err != nil {
		return 0, err
	}
	if err := v.svc.cluster.Submit(vid, p, uint64(off), false); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteAt writes len(p) bytes at the given volume offset through the shared
// request queue. The buffer is not copied; it stays aliased by the queue
// until completion.
func (v *VDI) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, communication.WrapValidationError("WriteAt", communication.CodeInvalidParams, ErrNegativeOffset)
	}
	vid, err := v.ioVID()
	if err != nil {
		return 0, err
	}
	if err := v.svc.cluster.Submit(vid, p, uint64(off), true); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (v *VDI) ioVID() (uint32, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.closed || v.poisoned {
		return 0, communication.WrapValidationError("Submit", communication.CodeInvalidParams, ErrHandleClosed)
	}
	return v.vid, nil
}
