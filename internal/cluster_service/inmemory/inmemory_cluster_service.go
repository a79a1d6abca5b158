package inmemory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/herdstore/herdstore/internal/cluster_service"
	"github.com/herdstore/herdstore/internal/communication"
	"github.com/herdstore/herdstore/internal/log_service"
	"github.com/herdstore/herdstore/internal/vdi_service"
)

// InMemoryClusterService is a single-process stand-in for the herdstore
// cluster: VDI registry with vid allocation, normal-lock table and an object
// map with copy-on-write materialization. It serves the same wire operations
// a real gateway does, so the whole client stack runs against it unchanged
// in tests and local development.
type InMemoryClusterService struct {
	mu sync.Mutex
	ls log_service.LogService

	nextVID uint32
	current map[string]uint32 // live head per name
	names   map[uint32]string // vid -> name
	locks   map[string]string // name -> holder client id
	objects map[uint64][]byte

	rpcs         int
	objectWrites int
}

func NewInMemoryClusterService(ls log_service.LogService) *InMemoryClusterService {
	return &InMemoryClusterService{
		ls:      ls,
		current: make(map[string]uint32),
		names:   make(map[uint32]string),
		locks:   make(map[string]string),
		objects: make(map[uint64][]byte),
	}
}

// RPCs returns how many envelope messages have been served.
func (s *InMemoryClusterService) RPCs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rpcs
}

// ObjectWrites returns how many WriteObject operations have been applied.
func (s *InMemoryClusterService) ObjectWrites() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objectWrites
}

// ForceCurrent rebinds the live head of name, for tests that need a name to
// resolve to an arbitrary revision.
func (s *InMemoryClusterService) ForceCurrent(name string, vid uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current[name] = vid
}

func ok(body []byte) *communication.Response {
	return &communication.Response{Code: communication.CodeOK, Body: body}
}

func fail(code communication.HerdCode) *communication.Response {
	return &communication.Response{Code: code}
}

func vidBody(vid uint32) []byte {
	body, _ := json.Marshal(communication.VDIResponse{VID: vid})
	return body
}

// Handle implements communication.MessageHandler.
func (s *InMemoryClusterService) Handle(ctx context.Context, msg communication.Message) (*communication.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rpcs++

	switch req := msg.Payload.(type) {
	case communication.LockVDIRequest:
		return s.lockVDI(msg.From, req), nil
	case communication.ReleaseVDIRequest:
		return s.releaseVDI(req), nil
	case communication.GetVDIInfoRequest:
		return s.getVDIInfo(req), nil
	case communication.NewVDIRequest:
		return s.newVDI(req), nil
	case communication.ReadObjectRequest:
		return s.readObject(req), nil
	case communication.WriteObjectRequest:
		return s.writeObject(req), nil
	}
	return fail(communication.CodeSystemError), nil
}

func (s *InMemoryClusterService) lockVDI(from string, req communication.LockVDIRequest) *communication.Response {
	vid, exists := s.current[req.Name]
	if !exists {
		return fail(communication.CodeNoVDI)
	}
	if holder, locked := s.locks[req.Name]; locked && holder != from {
		return fail(communication.CodeVDILocked)
	}
	s.locks[req.Name] = from
	return ok(vidBody(vid))
}

func (s *InMemoryClusterService) releaseVDI(req communication.ReleaseVDIRequest) *communication.Response {
	name, exists := s.names[req.VID]
	if !exists {
		return fail(communication.CodeNoVDI)
	}
	if _, locked := s.locks[name]; !locked {
		return fail(communication.CodeVDINotLocked)
	}
	delete(s.locks, name)
	return ok(nil)
}

func (s *InMemoryClusterService) getVDIInfo(req communication.GetVDIInfoRequest) *communication.Response {
	head, exists := s.current[req.Name]
	if !exists {
		return fail(communication.CodeNoVDI)
	}
	if req.Tag == "" {
		return ok(vidBody(head))
	}

	for vid, name := range s.names {
		if name != req.Name {
			continue
		}
		ino := s.inodeOf(vid)
		if ino != nil && ino.Tag == req.Tag {
			return ok(vidBody(vid))
		}
	}
	return fail(communication.CodeNoTag)
}

func (s *InMemoryClusterService) newVDI(req communication.NewVDIRequest) *communication.Response {
	if req.Name == "" || req.Size == 0 {
		return fail(communication.CodeInvalidParams)
	}
	if _, exists := s.current[req.Name]; exists && req.BaseVID == 0 {
		return fail(communication.CodeVDIExists)
	}

	if req.Snapshot {
		// The tagged base revision becomes immutable: stamp its
		// snapshot time in place.
		base := s.inodeOf(req.BaseVID)
		if base == nil {
			return fail(communication.CodeNoVDI)
		}
		base.SnapshotTime = uint64(time.Now().UnixNano())
		s.objects[vdi_service.VIDToVDIOID(req.BaseVID)] = vdi_service.MarshalInode(base)
	}

	s.nextVID++
	vid := s.nextVID

	ino := &vdi_service.Inode{
		Name:        req.Name,
		CreateTime:  uint64(time.Now().UnixNano()),
		VID:         vid,
		BaseVID:     req.BaseVID,
		Size:        req.Size,
		StorePolicy: vdi_service.StorePolicy(req.StorePolicy),
	}
	s.objects[vdi_service.VIDToVDIOID(vid)] = vdi_service.MarshalInode(ino)
	s.names[vid] = req.Name
	s.current[req.Name] = vid

	s.ls.Debug(log_service.LogEvent{
		Message:  "Created VDI revision",
		Metadata: map[string]any{"name": req.Name, "vid": vid, "base": req.BaseVID, "snapshot": req.Snapshot},
	})
	return ok(vidBody(vid))
}

func (s *InMemoryClusterService) readObject(req communication.ReadObjectRequest) *communication.Response {
	obj, exists := s.objects[req.OID]
	if !exists {
		return fail(communication.CodeNoObj)
	}

	// Objects are sparse: reads past the materialized length are zeroes.
	data := make([]byte, req.Length)
	if req.Offset < uint64(len(obj)) {
		copy(data, obj[req.Offset:])
	}
	return ok(data)
}

func (s *InMemoryClusterService) writeObject(req communication.WriteObjectRequest) *communication.Response {
	obj, exists := s.objects[req.OID]
	if !exists {
		if !req.Create {
			return fail(communication.CodeNoObj)
		}
		if req.CowOID != 0 {
			src, srcExists := s.objects[req.CowOID]
			if !srcExists {
				return fail(communication.CodeNoObj)
			}
			obj = make([]byte, len(src))
			copy(obj, src)
		}
	}

	end := req.Offset + uint64(len(req.Data))
	if uint64(len(obj)) < end {
		grown := make([]byte, end)
		copy(grown, obj)
		obj = grown
	}
	copy(obj[req.Offset:], req.Data)
	s.objects[req.OID] = obj
	s.objectWrites++
	return ok(nil)
}

func (s *InMemoryClusterService) inodeOf(vid uint32) *vdi_service.Inode {
	obj, exists := s.objects[vdi_service.VIDToVDIOID(vid)]
	if !exists {
		return nil
	}
	ino, err := vdi_service.UnmarshalInode(obj)
	if err != nil {
		return nil
	}
	return ino
}

// dataOID addresses one data object of a VDI. The 24-bit vid occupies bits
// 32..55 and the block index the low 32 bits (the largest volume holds 2^32
// objects), so data oids never collide across volumes and never reach the
// inode metadata bit. Block-to-object addressing belongs to the data path,
// not to the client core, which is why it lives here with the rest of the
// cluster stand-in.
func dataOID(vid uint32, idx uint64) uint64 {
	return uint64(vid)<<32 | idx
}

// BlockHandler returns the dispatcher data path for this mock cluster:
// block reads fall through the COW base chain, block writes materialize a
// private copy of the base object before the first modification.
func (s *InMemoryClusterService) BlockHandler() cluster_service.RequestHandler {
	return func(req *cluster_service.Request) communication.HerdCode {
		s.mu.Lock()
		defer s.mu.Unlock()

		remaining := req.Data
		off := req.Offset
		for len(remaining) > 0 {
			idx := off / vdi_service.ObjectSize
			inObj := off % vdi_service.ObjectSize
			n := uint64(len(remaining))
			if n > vdi_service.ObjectSize-inObj {
				n = vdi_service.ObjectSize - inObj
			}

			if req.Write {
				if code := s.writeBlock(req.VID, idx, inObj, remaining[:n]); code != communication.CodeOK {
					return code
				}
			} else {
				s.readBlock(req.VID, idx, inObj, remaining[:n])
			}

			remaining = remaining[n:]
			off += n
		}
		return communication.CodeOK
	}
}

func (s *InMemoryClusterService) writeBlock(vid uint32, idx uint64, off uint64, data []byte) communication.HerdCode {
	oid := dataOID(vid, idx)
	obj, exists := s.objects[oid]
	if !exists {
		obj = make([]byte, vdi_service.ObjectSize)
		// First write to this object: materialize the base copy.
		if srcOID, found := s.findBaseObject(vid, idx); found {
			copy(obj, s.objects[srcOID])
		}
	}
	copy(obj[off:], data)
	s.objects[oid] = obj
	return communication.CodeOK
}

func (s *InMemoryClusterService) readBlock(vid uint32, idx uint64, off uint64, data []byte) {
	for v := vid; v != 0; {
		if obj, exists := s.objects[dataOID(v, idx)]; exists {
			if off < uint64(len(obj)) {
				copy(data, obj[off:])
			}
			return
		}
		ino := s.inodeOf(v)
		if ino == nil {
			break
		}
		v = ino.BaseVID
	}
	for i := range data {
		data[i] = 0
	}
}

// findBaseObject walks the base chain looking for the object a new write
// must COW from. The handle's own vid is skipped; only ancestors donate.
func (s *InMemoryClusterService) findBaseObject(vid uint32, idx uint64) (uint64, bool) {
	ino := s.inodeOf(vid)
	for ino != nil && ino.BaseVID != 0 {
		oid := dataOID(ino.BaseVID, idx)
		if _, exists := s.objects[oid]; exists {
			return oid, true
		}
		ino = s.inodeOf(ino.BaseVID)
	}
	return 0, false
}
