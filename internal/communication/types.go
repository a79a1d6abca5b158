package communication

// Message types for every cluster operation the client issues.
const (
	MessageTypeLockVDI     = "LockVDI"
	MessageTypeReleaseVDI  = "ReleaseVDI"
	MessageTypeGetVDIInfo  = "GetVDIInfo"
	MessageTypeNewVDI      = "NewVDI"
	MessageTypeReadObject  = "ReadObject"
	MessageTypeWriteObject = "WriteObject"
)

// Lock types for LockVDI/ReleaseVDI. Only the normal exclusive lock is
// implemented; the constant keeps the wire field explicit.
const LockTypeNormal = "normal"

type LockVDIRequest struct {
	Name     string `json:"name"`
	LockType string `json:"lockType"`
}

type ReleaseVDIRequest struct {
	VID      uint32 `json:"vid"`
	LockType string `json:"lockType"`
}

type GetVDIInfoRequest struct {
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

type NewVDIRequest struct {
	Name        string `json:"name"`
	Size        uint64 `json:"size"`
	BaseVID     uint32 `json:"baseVid"`
	Snapshot    bool   `json:"snapshot"`
	StorePolicy uint8  `json:"storePolicy"`
}

type ReadObjectRequest struct {
	OID    uint64 `json:"oid"`
	Length uint32 `json:"length"`
	Offset uint64 `json:"offset"`
	Direct bool   `json:"direct"`
}

type WriteObjectRequest struct {
	OID    uint64 `json:"oid"`
	CowOID uint64 `json:"cowOid"`
	Offset uint64 `json:"offset"`
	Data   []byte `json:"data"`
	Create bool   `json:"create"`
	Direct bool   `json:"direct"`
}

// VDIResponse is the JSON body of LockVDI and NewVDI replies.
type VDIResponse struct {
	VID uint32 `json:"vid"`
}
