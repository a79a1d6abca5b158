package communication

// HerdCode is one of the closed set of cluster result codes. Codes travel
// verbatim on the wire and are never remapped inside the client.
type HerdCode string

const (
	CodeOK            HerdCode = "OK"
	CodeUnknown       HerdCode = "UNKNOWN"
	CodeNoVDI         HerdCode = "NO_VDI"
	CodeNoTag         HerdCode = "NO_TAG"
	CodeNoObj         HerdCode = "NO_OBJ"
	CodeVDIExists     HerdCode = "VDI_EXISTS"
	CodeTagExists     HerdCode = "TAG_EXISTS"
	CodeVDILocked     HerdCode = "VDI_LOCKED"
	CodeVDINotLocked  HerdCode = "VDI_NOT_LOCKED"
	CodeInvalidParams HerdCode = "INVALID_PARAMS"
	CodeSystemError   HerdCode = "SYSTEM_ERROR"
	CodeEIO           HerdCode = "EIO"
	CodeNoSpace       HerdCode = "NO_SPACE"
)

// codeMessages backs HerdCode.Describe for diagnostics.
var codeMessages = map[HerdCode]string{
	CodeOK:            "success",
	CodeUnknown:       "unknown error",
	CodeNoVDI:         "no such VDI",
	CodeNoTag:         "VDI exists but no revision carries this tag",
	CodeNoObj:         "no such object",
	CodeVDIExists:     "VDI already exists",
	CodeTagExists:     "snapshot tag already in use",
	CodeVDILocked:     "VDI is locked by another client",
	CodeVDINotLocked:  "VDI is not locked",
	CodeInvalidParams: "invalid parameters",
	CodeSystemError:   "system error",
	CodeEIO:           "I/O error",
	CodeNoSpace:       "server has no space for new objects",
}

func (c HerdCode) Describe() string {
	if msg, ok := codeMessages[c]; ok {
		return msg
	}
	return string(c)
}
