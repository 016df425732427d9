package types

import "fmt"

// Handle is an opaque token for an object owned by the native side.
// Callers never dereference it; they pass it back to the side that issued it.
type Handle uint64

// NoHandle is delivered with failed completions.
const NoHandle Handle = 0

// IsValid reports whether h refers to something.
func (h Handle) IsValid() bool { return h != NoHandle }

// String implements fmt.Stringer.
func (h Handle) String() string { return fmt.Sprintf("handle(%#x)", uint64(h)) }

// Result codes shared by the native side and its callers. Zero is success.
const (
	CodeOK                int32 = 0
	CodeEncodeDecodeError int32 = -1
	CodeRoutingError      int32 = -4
	CodeOperationAborted  int32 = -12
	CodeRequestTimeout    int32 = -17
	CodeUnexpected        int32 = -15
	CodeInvalidArgument   int32 = -1000
	CodeNoSuchHandle      int32 = -1001
)

// FfiResult accompanies every callback based completion.
type FfiResult struct {
	ErrorCode   int32  `json:"error_code"`
	Description string `json:"description,omitempty"`
}

// ResultOK is the successful FfiResult.
var ResultOK = FfiResult{ErrorCode: CodeOK}

// OK reports whether r signals success.
func (r FfiResult) OK() bool { return r.ErrorCode == CodeOK }

// String implements fmt.Stringer.
func (r FfiResult) String() string {
	if r.OK() {
		return "ok"
	}
	if r.Description == "" {
		return fmt.Sprintf("error %d", r.ErrorCode)
	}
	return fmt.Sprintf("error %d: %s", r.ErrorCode, r.Description)
}

// DisconnectNotifierFunc is invoked by the native side on an unexpected
// network disconnect. It may run zero or more times on any goroutine.
type DisconnectNotifierFunc func()

// CompletionFunc receives the outcome of a registration call exactly once.
type CompletionFunc func(result FfiResult, handle Handle)

// DecodeCompletionFunc receives the outcome of an IPC decode exactly once.
// msg is nil whenever result is not OK.
type DecodeCompletionFunc func(result FfiResult, msg *IpcMsg)
