package communication

import (
	"errors"
	"fmt"
)

var (
	// Server startup/shutdown errors
	ErrServerStartFailed = errors.New("failed to start server")
	ErrServerStopFailed  = errors.New("failed to stop server")

	// Client connection errors
	ErrClientCreateFailed = errors.New("failed to create client")
	ErrConnectionFailed   = errors.New("failed to connect to gateway")

	// Message handling errors
	ErrHandlerNotSet     = errors.New("message handler not set")
	ErrMessageSendFailed = errors.New("failed to send message")

	// Serialization/deserialization errors
	ErrPayloadMarshalFailed   = errors.New("failed to marshal payload")
	ErrPayloadUnmarshalFailed = errors.New("failed to unmarshal payload")

	// GRPC specific errors
	ErrGRPCListenFailed = errors.New("failed to listen on address")
)

// FailureKind tags where a cluster operation failed. Transport, remote and
// validation failures form disjoint spaces and are never collapsed into one
// flat code set.
type FailureKind int

const (
	// KindTransport: the RPC round trip itself failed; no remote code exists.
	KindTransport FailureKind = iota
	// KindRemote: the round trip completed and the cluster reported a
	// non-success result code.
	KindRemote
	// KindValidation: the client rejected the call locally before issuing
	// any RPC.
	KindValidation
)

func (k FailureKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindRemote:
		return "remote"
	case KindValidation:
		return "validation"
	}
	return "unknown"
}

// HerdError is the tagged failure type for cluster operations. Code is only
// meaningful for KindRemote and KindValidation; transport failures wrap the
// underlying error instead.
type HerdError struct {
	Kind FailureKind
	Code HerdCode
	Op   string
	Err  error
}

func (e *HerdError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s failure: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s failure: %s", e.Op, e.Kind, e.Code.Describe())
}

func (e *HerdError) Unwrap() error { return e.Err }

// Is lets callers match against a prototype carrying just Kind and Code,
// e.g. errors.Is(err, &HerdError{Kind: KindRemote, Code: CodeVDILocked}).
func (e *HerdError) Is(target error) bool {
	t, ok := target.(*HerdError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Code == "" || e.Code == t.Code)
}

func NewTransportError(op string, err error) *HerdError {
	return &HerdError{Kind: KindTransport, Op: op, Err: err}
}

func NewRemoteError(op string, code HerdCode) *HerdError {
	return &HerdError{Kind: KindRemote, Op: op, Code: code}
}

func NewValidationError(op string, code HerdCode) *HerdError {
	return &HerdError{Kind: KindValidation, Op: op, Code: code}
}

// WrapValidationError attaches a descriptive cause so callers can match the
// sentinel with errors.Is while the code taxonomy stays intact.
func WrapValidationError(op string, code HerdCode, cause error) *HerdError {
	return &HerdError{Kind: KindValidation, Op: op, Code: code, Err: cause}
}

// CodeOf extracts the cluster result code from an error chain. Transport
// failures and foreign errors map to CodeSystemError.
func CodeOf(err error) HerdCode {
	if err == nil {
		return CodeOK
	}
	var he *HerdError
	if errors.As(err, &he) && he.Kind != KindTransport {
		return he.Code
	}
	return CodeSystemError
}
