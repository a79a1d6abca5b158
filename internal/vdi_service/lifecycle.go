package vdi_service

import (
	"context"
	"encoding/json"

	"github.com/herdstore/herdstore/internal/communication"
	"github.com/herdstore/herdstore/internal/log_service"
)

// doVDICreate issues the generic NewVDI operation every lifecycle path
// funnels through: plain create (base 0), snapshot branch and clone differ
// only in their arguments.
func (s *DefaultVDIService) doVDICreate(ctx context.Context, name string, size uint64, baseVID uint32, snapshot bool, policy StorePolicy) (uint32, error) {
	resp, err := s.cluster.RunRequest(ctx, communication.MessageTypeNewVDI, communication.NewVDIRequest{
		Name:        name,
		Size:        size,
		BaseVID:     baseVID,
		Snapshot:    snapshot,
		StorePolicy: uint8(policy),
	})
	if err != nil {
		return 0, err
	}
	if resp.Code != communication.CodeOK {
		return 0, communication.NewRemoteError("NewVDI", resp.Code)
	}

	var out communication.VDIResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return 0, communication.NewTransportError("NewVDI", communication.ErrPayloadUnmarshalFailed)
	}
	if out.VID > MaxVID {
		return 0, communication.NewTransportError("NewVDI", ErrVIDOutOfRange)
	}
	return out.VID, nil
}

// Create makes a fresh empty VDI. Sizes above the legacy maximum select the
// extended store policy.
func (s *DefaultVDIService) Create(ctx context.Context, name string, size uint64) error {
	const op = "CreateVDI"

	if size > MaxVDISize {
		s.ls.Error(log_service.LogEvent{Message: "VDI size is too large", Metadata: map[string]any{"name": name, "size": size}})
		return communication.WrapValidationError(op, communication.CodeInvalidParams, ErrSizeTooLarge)
	}
	if size == 0 {
		s.ls.Error(log_service.LogEvent{Message: "VDI size must be larger than 0", Metadata: map[string]any{"name": name}})
		return communication.WrapValidationError(op, communication.CodeInvalidParams, ErrSizeZero)
	}
	if name == "" {
		s.ls.Error(log_service.LogEvent{Message: "VDI name can not be empty"})
		return communication.WrapValidationError(op, communication.CodeInvalidParams, ErrNameRequired)
	}
	if len(name) >= MaxVDINameLen {
		s.ls.Error(log_service.LogEvent{Message: "VDI name is too long", Metadata: map[string]any{"name": name}})
		return communication.WrapValidationError(op, communication.CodeInvalidParams, ErrNameTooLong)
	}

	policy := StorePolicyLegacy
	if size > LegacyMaxVDISize {
		policy = StorePolicyExtended
	}

	if _, err := s.doVDICreate(ctx, name, size, 0, false, policy); err != nil {
		s.ls.Error(log_service.LogEvent{
			Message:  "Failed to create VDI",
			Metadata: map[string]any{"name": name, "size": size, "error": err.Error()},
		})
		return err
	}
	return nil
}

// Snapshot freezes the live head of name under tag and creates a fresh
// mutable head chained to the now-immutable tagged revision. If the new-head
// create fails after the tag write succeeded, the tag write is not rolled
// back: the volume is left tagged but not branched.
func (s *DefaultVDIService) Snapshot(ctx context.Context, name string, tag string) error {
	const op = "SnapshotVDI"

	if tag == "" {
		s.ls.Error(log_service.LogEvent{Message: "Snapshot tag can not be empty", Metadata: map[string]any{"name": name}})
		return communication.WrapValidationError(op, communication.CodeInvalidParams, ErrTagRequired)
	}
	if name == "" {
		s.ls.Error(log_service.LogEvent{Message: "VDI name can not be empty"})
		return communication.WrapValidationError(op, communication.CodeInvalidParams, ErrNameRequired)
	}

	var ino *Inode
	_, err := s.findVDI(ctx, name, tag)
	switch {
	case err == nil:
		s.ls.Error(log_service.LogEvent{
			Message:  "Failed to create snapshot: tag already exists",
			Metadata: map[string]any{"name": name, "tag": tag},
		})
		return communication.WrapValidationError(op, communication.CodeTagExists, ErrTagInUse)

	case communication.CodeOf(err) == communication.CodeNoTag:
		ino, err = s.readInode(ctx, name, "", true)
		if err != nil {
			s.ls.Error(log_service.LogEvent{
				Message:  "Failed to read inode",
				Metadata: map[string]any{"name": name, "error": err.Error()},
			})
			return err
		}

	default:
		s.ls.Error(log_service.LogEvent{
			Message:  "Failed to create snapshot",
			Metadata: map[string]any{"name": name, "tag": tag, "error": err.Error()},
		})
		return err
	}

	if ino.StorePolicy != StorePolicyLegacy {
		s.ls.Error(log_service.LogEvent{
			Message:  "Creating a snapshot of an extended-policy volume is not supported",
			Metadata: map[string]any{"name": name},
		})
		return communication.WrapValidationError(op, communication.CodeInvalidParams, ErrNotSnapshottable)
	}

	// Freeze the current revision under the tag.
	if err := s.writeObject(ctx, VIDToVDIOID(ino.VID), 0, EncodeTag(tag), TagOffset, false, false); err != nil {
		s.ls.Error(log_service.LogEvent{
			Message:  "Failed to write snapshot tag",
			Metadata: map[string]any{"name": name, "tag": tag, "vid": ino.VID, "error": err.Error()},
		})
		return err
	}

	if _, err := s.doVDICreate(ctx, ino.Name, ino.Size, ino.VID, true, StorePolicyLegacy); err != nil {
		s.ls.Error(log_service.LogEvent{
			Message:  "Failed to create new head after tagging",
			Metadata: map[string]any{"name": name, "tag": tag, "error": err.Error()},
		})
		return err
	}
	return nil
}

// Clone creates an independent writable VDI from a tagged snapshot. Objects
// are materialized lazily on first write and shared with the source until
// then.
func (s *DefaultVDIService) Clone(ctx context.Context, srcName string, srcTag string, dstName string) error {
	const op = "CloneVDI"

	if dstName == "" {
		s.ls.Error(log_service.LogEvent{Message: "Destination VDI name can not be empty", Metadata: map[string]any{"src": srcName}})
		return communication.WrapValidationError(op, communication.CodeInvalidParams, ErrNameRequired)
	}
	if srcTag == "" {
		s.ls.Error(log_service.LogEvent{
			Message:  "Only snapshot VDIs can be cloned, a snapshot tag is required",
			Metadata: map[string]any{"src": srcName, "dst": dstName},
		})
		return communication.WrapValidationError(op, communication.CodeInvalidParams, ErrTagRequired)
	}
	if srcName == "" {
		s.ls.Error(log_service.LogEvent{Message: "Source VDI name can not be empty", Metadata: map[string]any{"dst": dstName}})
		return communication.WrapValidationError(op, communication.CodeInvalidParams, ErrNameRequired)
	}

	ino, err := s.readInode(ctx, srcName, srcTag, false)
	if err != nil {
		s.ls.Error(log_service.LogEvent{
			Message:  "Failed to read source inode",
			Metadata: map[string]any{"src": srcName, "tag": srcTag, "error": err.Error()},
		})
		return err
	}

	if _, err := s.doVDICreate(ctx, dstName, ino.Size, ino.VID, false, ino.StorePolicy); err != nil {
		s.ls.Error(log_service.LogEvent{
			Message:  "Failed to clone VDI",
			Metadata: map[string]any{"src": srcName, "tag": srcTag, "dst": dstName, "error": err.Error()},
		})
		return err
	}
	return nil
}
