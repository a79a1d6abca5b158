package vdi_service

import (
	"bytes"
	"testing"
)

func TestVIDToVDIOID(t *testing.T) {
	tests := []struct {
		name string
		vid  uint32
		want uint64
	}{
		{
			name: "smallest vid",
			vid:  1,
			want: 1<<63 | 1<<32,
		},
		{
			name: "zero vid keeps the metadata bit",
			vid:  0,
			want: 1 << 63,
		},
		{
			name: "largest vid",
			vid:  MaxVID,
			want: 1<<63 | uint64(MaxVID)<<32,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VIDToVDIOID(tt.vid)
			if got != tt.want {
				t.Errorf("VIDToVDIOID(%d) = %#x, want %#x", tt.vid, got, tt.want)
			}
			if got != VIDToVDIOID(tt.vid) {
				t.Errorf("VIDToVDIOID(%d) is not deterministic", tt.vid)
			}
		})
	}
}

func TestVIDToVDIOID_Injective(t *testing.T) {
	seen := make(map[uint64]uint32)
	for _, vid := range []uint32{0, 1, 2, 255, 256, 1 << 16, 1 << 23, MaxVID - 1, MaxVID} {
		oid := VIDToVDIOID(vid)
		if prev, dup := seen[oid]; dup {
			t.Errorf("VIDToVDIOID collision: vids %d and %d both map to %#x", prev, vid, oid)
		}
		seen[oid] = vid

		// Every oid in the valid id space must decode back to its vid and
		// keep the metadata bit intact; ids large enough to reach the
		// metadata bit are rejected at the wire, not mapped.
		if oid&vdiBit == 0 {
			t.Errorf("VIDToVDIOID(%d) lost the metadata bit", vid)
		}
		if (oid^vdiBit)>>vdiSpaceShift != uint64(vid) {
			t.Errorf("VIDToVDIOID(%d) = %#x does not decode back to its vid", vid, oid)
		}
	}
}

func TestMarshalInode_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		ino  *Inode
	}{
		{
			name: "fresh volume",
			ino: &Inode{
				Name:        "vol0",
				CreateTime:  1234,
				VID:         7,
				Size:        64 << 20,
				StorePolicy: StorePolicyLegacy,
			},
		},
		{
			name: "tagged snapshot revision",
			ino: &Inode{
				Name:         "vol0",
				Tag:          "golden",
				CreateTime:   1234,
				SnapshotTime: 5678,
				VID:          7,
				BaseVID:      3,
				Size:         64 << 20,
				StorePolicy:  StorePolicyLegacy,
			},
		},
		{
			name: "extended policy with body",
			ino: &Inode{
				Name:        "big",
				CreateTime:  1,
				VID:         9,
				Size:        LegacyMaxVDISize + 1,
				StorePolicy: StorePolicyExtended,
				Body:        bytes.Repeat([]byte{0xAB}, 128),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalInode(tt.ino)
			if len(data) != InodeSize {
				t.Fatalf("MarshalInode() length = %d, want %d", len(data), InodeSize)
			}

			got, err := UnmarshalInode(data)
			if err != nil {
				t.Fatalf("UnmarshalInode() error = %v", err)
			}

			if got.Name != tt.ino.Name || got.Tag != tt.ino.Tag {
				t.Errorf("decoded identity = (%q, %q), want (%q, %q)", got.Name, got.Tag, tt.ino.Name, tt.ino.Tag)
			}
			if got.CreateTime != tt.ino.CreateTime || got.SnapshotTime != tt.ino.SnapshotTime {
				t.Errorf("decoded times = (%d, %d), want (%d, %d)", got.CreateTime, got.SnapshotTime, tt.ino.CreateTime, tt.ino.SnapshotTime)
			}
			if got.VID != tt.ino.VID || got.BaseVID != tt.ino.BaseVID {
				t.Errorf("decoded vids = (%d, %d), want (%d, %d)", got.VID, got.BaseVID, tt.ino.VID, tt.ino.BaseVID)
			}
			if got.Size != tt.ino.Size {
				t.Errorf("decoded size = %d, want %d", got.Size, tt.ino.Size)
			}
			if got.StorePolicy != tt.ino.StorePolicy {
				t.Errorf("decoded policy = %d, want %d", got.StorePolicy, tt.ino.StorePolicy)
			}
			if len(tt.ino.Body) > 0 && !bytes.Equal(got.Body[:len(tt.ino.Body)], tt.ino.Body) {
				t.Errorf("decoded body prefix differs from input")
			}
		})
	}
}

func TestUnmarshalInode_HeaderOnly(t *testing.T) {
	full := MarshalInode(&Inode{
		Name:       "vol0",
		Tag:        "t1",
		CreateTime: 99,
		VID:        4,
		Size:       1 << 30,
	})

	ino, err := UnmarshalInode(full[:InodeHeaderSize])
	if err != nil {
		t.Fatalf("UnmarshalInode(header prefix) error = %v", err)
	}
	if ino.Name != "vol0" || ino.Tag != "t1" || ino.VID != 4 || ino.Size != 1<<30 {
		t.Errorf("header-only decode = %+v", ino)
	}
	if len(ino.Body) != 0 {
		t.Errorf("header-only decode has body of %d bytes", len(ino.Body))
	}
}

func TestUnmarshalInode_Truncated(t *testing.T) {
	_, err := UnmarshalInode(make([]byte, InodeHeaderSize-1))
	if err != ErrInodeTruncated {
		t.Errorf("UnmarshalInode() error = %v, want %v", err, ErrInodeTruncated)
	}
}

func TestUnmarshalInode_VIDOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		vid     uint32
		baseVID uint32
	}{
		{
			name: "vid just past the id space",
			vid:  MaxVID + 1,
		},
		{
			name: "vid with bit 31 set would reach the metadata bit",
			vid:  1 << 31,
		},
		{
			name:    "base vid out of range",
			vid:     7,
			baseVID: MaxVID + 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalInode(&Inode{Name: "vol0", VID: tt.vid, BaseVID: tt.baseVID, Size: 1 << 20})
			if _, err := UnmarshalInode(data); err != ErrVIDOutOfRange {
				t.Errorf("UnmarshalInode() error = %v, want %v", err, ErrVIDOutOfRange)
			}
		})
	}
}

func TestEncodeTag(t *testing.T) {
	buf := EncodeTag("golden")
	if len(buf) != MaxVDITagLen {
		t.Fatalf("EncodeTag() length = %d, want %d", len(buf), MaxVDITagLen)
	}
	if fixedString(buf) != "golden" {
		t.Errorf("EncodeTag() decodes to %q, want %q", fixedString(buf), "golden")
	}
	for _, b := range buf[len("golden"):] {
		if b != 0 {
			t.Fatalf("EncodeTag() padding is not zeroed")
		}
	}
}

func TestEncodeTag_MatchesInodeTagField(t *testing.T) {
	// The snapshot path writes EncodeTag output at TagOffset; splicing it
	// into a marshalled inode must be exactly equivalent to setting Tag.
	plain := MarshalInode(&Inode{Name: "vol0", VID: 1, Size: 1 << 20})
	copy(plain[TagOffset:], EncodeTag("golden"))

	ino, err := UnmarshalInode(plain)
	if err != nil {
		t.Fatalf("UnmarshalInode() error = %v", err)
	}
	if ino.Tag != "golden" {
		t.Errorf("spliced tag = %q, want %q", ino.Tag, "golden")
	}
}

func TestInode_IsSnapshot(t *testing.T) {
	if (&Inode{}).IsSnapshot() {
		t.Errorf("zero SnapshotTime reported as snapshot")
	}
	if !(&Inode{SnapshotTime: 1}).IsSnapshot() {
		t.Errorf("stamped SnapshotTime not reported as snapshot")
	}
}
