package vdi_service

import (
	"context"
	"encoding/json"

	"github.com/herdstore/herdstore/internal/communication"
)

// findVDI resolves a name plus optional tag to a revision id. An empty tag
// resolves the live head. CodeNoTag comes back as a typed remote error that
// lifecycle operations treat as control flow, not as a hard failure.
func (s *DefaultVDIService) findVDI(ctx context.Context, name string, tag string) (uint32, error) {
	resp, err := s.cluster.RunRequest(ctx, communication.MessageTypeGetVDIInfo, communication.GetVDIInfoRequest{
		Name: name,
		Tag:  tag,
	})
	if err != nil {
		return 0, err
	}
	if resp.Code != communication.CodeOK {
		return 0, communication.NewRemoteError("GetVDIInfo", resp.Code)
	}

	var out communication.VDIResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return 0, communication.NewTransportError("GetVDIInfo", communication.ErrPayloadUnmarshalFailed)
	}
	if out.VID > MaxVID {
		return 0, communication.NewTransportError("GetVDIInfo", ErrVIDOutOfRange)
	}
	return out.VID, nil
}

// readInode resolves (name, tag) and reads either the fixed header prefix or
// the full inode object, bypassing the gateway cache.
func (s *DefaultVDIService) readInode(ctx context.Context, name string, tag string, headerOnly bool) (*Inode, error) {
	vid, err := s.findVDI(ctx, name, tag)
	if err != nil {
		return nil, err
	}

	length := uint32(InodeSize)
	if headerOnly {
		length = InodeHeaderSize
	}

	data, err := s.readObject(ctx, VIDToVDIOID(vid), length, 0, true)
	if err != nil {
		return nil, err
	}
	return UnmarshalInode(data)
}
