package types

import "fmt"

// IpcErrorKind enumerates the failures an authenticator can report.
type IpcErrorKind string

const (
	IpcErrAuthDenied             IpcErrorKind = "AuthDenied"
	IpcErrContainersDenied       IpcErrorKind = "ContainersDenied"
	IpcErrInvalidMsg             IpcErrorKind = "InvalidMsg"
	IpcErrEncodeDecodeError      IpcErrorKind = "EncodeDecodeError"
	IpcErrAlreadyAuthorised      IpcErrorKind = "AlreadyAuthorised"
	IpcErrUnknownApp             IpcErrorKind = "UnknownApp"
	IpcErrUnexpected             IpcErrorKind = "Unexpected"
	IpcErrStringError            IpcErrorKind = "StringError"
	IpcErrShareMDataDenied       IpcErrorKind = "ShareMDataDenied"
	IpcErrInvalidOwner           IpcErrorKind = "InvalidOwner"
	IpcErrIncompatibleMockStatus IpcErrorKind = "IncompatibleMockStatus"
)

var ipcErrorCodes = map[IpcErrorKind]int32{
	IpcErrAuthDenied:             -200,
	IpcErrContainersDenied:       -201,
	IpcErrInvalidMsg:             -202,
	IpcErrEncodeDecodeError:      -203,
	IpcErrAlreadyAuthorised:      -204,
	IpcErrUnknownApp:             -205,
	IpcErrUnexpected:             -206,
	IpcErrStringError:            -207,
	IpcErrShareMDataDenied:       -208,
	IpcErrInvalidOwner:           -209,
	IpcErrIncompatibleMockStatus: -210,
}

// Known reports whether k is a defined kind.
func (k IpcErrorKind) Known() bool {
	_, ok := ipcErrorCodes[k]
	return ok
}

// Code returns the result code for k, or CodeUnexpected for unknown kinds.
func (k IpcErrorKind) Code() int32 {
	if c, ok := ipcErrorCodes[k]; ok {
		return c
	}
	return CodeUnexpected
}

// IpcErrorKindForCode maps a result code back to its kind.
func IpcErrorKindForCode(code int32) (IpcErrorKind, bool) {
	for k, c := range ipcErrorCodes {
		if c == code {
			return k, true
		}
	}
	return "", false
}

// IpcError is an IPC level failure. Message is only set for the kinds that
// carry one (Unexpected, StringError).
type IpcError struct {
	Kind    IpcErrorKind `json:"kind"`
	Message string       `json:"message,omitempty"`
}

// NewIpcError returns an *IpcError of kind with an optional message.
func NewIpcError(kind IpcErrorKind, msg string) *IpcError {
	return &IpcError{Kind: kind, Message: msg}
}

func (e *IpcError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("ipc: %s", e.Kind)
	}
	return fmt.Sprintf("ipc: %s: %s", e.Kind, e.Message)
}

// Code returns the FfiResult code for e.
func (e *IpcError) Code() int32 { return e.Kind.Code() }

// Result converts e into an FfiResult.
func (e *IpcError) Result() FfiResult {
	return FfiResult{ErrorCode: e.Code(), Description: e.Error()}
}

// Is matches any *IpcError of the same kind, so sentinels work with errors.Is.
func (e *IpcError) Is(target error) bool {
	t, ok := target.(*IpcError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrIpcAuthDenied        = &IpcError{Kind: IpcErrAuthDenied}
	ErrIpcContainersDenied  = &IpcError{Kind: IpcErrContainersDenied}
	ErrIpcInvalidMsg        = &IpcError{Kind: IpcErrInvalidMsg}
	ErrIpcEncodeDecodeError = &IpcError{Kind: IpcErrEncodeDecodeError}
	ErrIpcUnknownApp        = &IpcError{Kind: IpcErrUnknownApp}
	ErrIpcShareMDataDenied  = &IpcError{Kind: IpcErrShareMDataDenied}
)
