package vdi_service

import (
	"context"
	"encoding/json"

	"github.com/herdstore/herdstore/internal/communication"
)

// lockVDI acquires the cluster's exclusive normal lock for the handle's
// name. On success the server assigns the revision id, which stays bound to
// the handle for its whole open lifetime. One round trip, no retry.
func (s *DefaultVDIService) lockVDI(ctx context.Context, v *VDI) error {
	resp, err := s.cluster.RunRequest(ctx, communication.MessageTypeLockVDI, communication.LockVDIRequest{
		Name:     v.name,
		LockType: communication.LockTypeNormal,
	})
	if err != nil {
		return err
	}
	if resp.Code != communication.CodeOK {
		return communication.NewRemoteError("LockVDI", resp.Code)
	}

	var out communication.VDIResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return communication.NewTransportError("LockVDI", communication.ErrPayloadUnmarshalFailed)
	}
	if out.VID > MaxVID {
		return communication.NewTransportError("LockVDI", ErrVIDOutOfRange)
	}
	v.vid = out.VID
	return nil
}

// unlockVDI releases the normal lock identified by the bound revision id.
// Errors propagate verbatim; there is no retry.
func (s *DefaultVDIService) unlockVDI(ctx context.Context, v *VDI) error {
	resp, err := s.cluster.RunRequest(ctx, communication.MessageTypeReleaseVDI, communication.ReleaseVDIRequest{
		VID:      v.vid,
		LockType: communication.LockTypeNormal,
	})
	if err != nil {
		return err
	}
	if resp.Code != communication.CodeOK {
		return communication.NewRemoteError("ReleaseVDI", resp.Code)
	}
	return nil
}
