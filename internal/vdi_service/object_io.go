package vdi_service

import (
	"context"

	"github.com/herdstore/herdstore/internal/communication"
)

// readObject performs one addressed object read. direct asks the gateway to
// bypass its object cache.
func (s *DefaultVDIService) readObject(ctx context.Context, oid uint64, length uint32, offset uint64, direct bool) ([]byte, error) {
	resp, err := s.cluster.RunRequest(ctx, communication.MessageTypeReadObject, communication.ReadObjectRequest{
		OID:    oid,
		Length: length,
		Offset: offset,
		Direct: direct,
	})
	if err != nil {
		return nil, err
	}
	if resp.Code != communication.CodeOK {
		return nil, communication.NewRemoteError("ReadObject", resp.Code)
	}
	return resp.Body, nil
}

// writeObject performs one addressed object write. create selects
// create-and-write semantics; a non-zero cowOID makes the server materialize
// a private copy of the referenced object before applying the write, which
// is what keeps COW chains intact for derived VDIs. Transport failure is
// checked before the embedded result code.
func (s *DefaultVDIService) writeObject(ctx context.Context, oid uint64, cowOID uint64, data []byte, offset uint64, create bool, direct bool) error {
	resp, err := s.cluster.RunRequest(ctx, communication.MessageTypeWriteObject, communication.WriteObjectRequest{
		OID:    oid,
		CowOID: cowOID,
		Offset: offset,
		Data:   data,
		Create: create,
		Direct: direct,
	})
	if err != nil {
		return err
	}
	if resp.Code != communication.CodeOK {
		return communication.NewRemoteError("WriteObject", resp.Code)
	}
	return nil
}
