package vdi_service

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// On-wire inode geometry. The header is a fixed-size prefix of the full
// inode object; the body region holds the data-object addressing tables and
// is opaque to this client.
const (
	MaxVDINameLen = 256
	MaxVDITagLen  = 256

	InodeHeaderSize = 1024
	InodeSize       = 8192

	// TagOffset is the fixed byte offset of the tag field inside the inode
	// object. Snapshot writes the tag in place at this offset.
	TagOffset = 256

	// ObjectSize is the fixed size of one data object.
	ObjectSize = 4 << 20

	// LegacyMaxVDISize caps legacy-policy volumes; anything larger is
	// created with the extended store policy.
	LegacyMaxVDISize = uint64(ObjectSize) << 20 // 4 TiB
	MaxVDISize       = uint64(ObjectSize) << 32 // 16 PiB

	// MaxVID bounds the revision id space. Ids are 24-bit: shifted into an
	// oid they stay clear of the metadata bit, which keeps VIDToVDIOID
	// injective. Anything above this is a protocol violation.
	MaxVID = 1<<24 - 1
)

// Fixed header field offsets after the name and tag arrays.
const (
	createTimeOffset   = 512
	snapshotTimeOffset = 520
	vidOffset          = 528
	baseVIDOffset      = 532
	sizeOffset         = 536
	storePolicyOffset  = 544
)

type StorePolicy uint8

const (
	StorePolicyLegacy   StorePolicy = 0
	StorePolicyExtended StorePolicy = 1
)

var (
	ErrInodeTruncated = errors.New("inode data shorter than header size")
	ErrVIDOutOfRange  = errors.New("revision id outside the 24-bit id space")
)

// Inode is the decoded metadata object of one VDI revision.
type Inode struct {
	Name         string
	Tag          string
	CreateTime   uint64
	SnapshotTime uint64
	VID          uint32
	BaseVID      uint32
	Size         uint64
	StorePolicy  StorePolicy

	// Body is the opaque region past the header. Empty for header-only
	// reads.
	Body []byte
}

// IsSnapshot reports whether this revision has been frozen: the cluster
// stamps SnapshotTime when the revision is tagged.
func (ino *Inode) IsSnapshot() bool {
	return ino.SnapshotTime != 0
}

const (
	vdiSpaceShift = 32
	vdiBit        = uint64(1) << 63
)

// VIDToVDIOID maps a revision id to the object id of its inode. The
// transform is pure and injective over the 24-bit vid space: the metadata
// bit keeps inode oids disjoint from data oids and the shift keeps distinct
// vids from colliding. Ids above MaxVID would reach the metadata bit and
// collide; they are rejected wherever a vid enters from the wire.
func VIDToVDIOID(vid uint32) uint64 {
	return vdiBit | uint64(vid)<<vdiSpaceShift
}

func putFixedString(dst []byte, s string) {
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

func fixedString(src []byte) string {
	if i := bytes.IndexByte(src, 0); i >= 0 {
		src = src[:i]
	}
	return string(src)
}

// MarshalInode encodes a full fixed-size inode object, little-endian.
func MarshalInode(ino *Inode) []byte {
	buf := make([]byte, InodeSize)
	putFixedString(buf[0:MaxVDINameLen], ino.Name)
	putFixedString(buf[TagOffset:TagOffset+MaxVDITagLen], ino.Tag)
	binary.LittleEndian.PutUint64(buf[createTimeOffset:], ino.CreateTime)
	binary.LittleEndian.PutUint64(buf[snapshotTimeOffset:], ino.SnapshotTime)
	binary.LittleEndian.PutUint32(buf[vidOffset:], ino.VID)
	binary.LittleEndian.PutUint32(buf[baseVIDOffset:], ino.BaseVID)
	binary.LittleEndian.PutUint64(buf[sizeOffset:], ino.Size)
	buf[storePolicyOffset] = byte(ino.StorePolicy)
	copy(buf[InodeHeaderSize:], ino.Body)
	return buf
}

// UnmarshalInode decodes an inode from either a header-only prefix or a full
// object read.
func UnmarshalInode(data []byte) (*Inode, error) {
	if len(data) < InodeHeaderSize {
		return nil, ErrInodeTruncated
	}

	ino := &Inode{
		Name:         fixedString(data[0:MaxVDINameLen]),
		Tag:          fixedString(data[TagOffset : TagOffset+MaxVDITagLen]),
		CreateTime:   binary.LittleEndian.Uint64(data[createTimeOffset:]),
		SnapshotTime: binary.LittleEndian.Uint64(data[snapshotTimeOffset:]),
		VID:          binary.LittleEndian.Uint32(data[vidOffset:]),
		BaseVID:      binary.LittleEndian.Uint32(data[baseVIDOffset:]),
		Size:         binary.LittleEndian.Uint64(data[sizeOffset:]),
		StorePolicy:  StorePolicy(data[storePolicyOffset]),
	}
	if ino.VID > MaxVID || ino.BaseVID > MaxVID {
		return nil, ErrVIDOutOfRange
	}
	if len(data) > InodeHeaderSize {
		ino.Body = make([]byte, len(data)-InodeHeaderSize)
		copy(ino.Body, data[InodeHeaderSize:])
	}
	return ino, nil
}

// EncodeTag renders a tag as the fixed-size field written at TagOffset.
func EncodeTag(tag string) []byte {
	buf := make([]byte, MaxVDITagLen)
	putFixedString(buf, tag)
	return buf
}
