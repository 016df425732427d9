package binding

import (
	"fmt"

	"safeapp/internal/domain"
)

// ResultError is a failed FfiResult surfaced as an error.
type ResultError struct {
	Op     string
	Result domain.FfiResult
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Result)
}

// Code returns the native result code.
func (e *ResultError) Code() int32 { return e.Result.ErrorCode }

// Unwrap exposes the matching *domain.IpcError for IPC result codes, so
// errors.Is(err, domain.ErrIpcInvalidMsg) works across the boundary.
func (e *ResultError) Unwrap() error {
	kind, ok := domain.IpcErrorKindForCode(e.Result.ErrorCode)
	if !ok {
		return nil
	}
	return &domain.IpcError{Kind: kind, Message: e.Result.Description}
}

// Is matches another *ResultError with the same code.
func (e *ResultError) Is(target error) bool {
	t, ok := target.(*ResultError)
	return ok && t.Result.ErrorCode == e.Result.ErrorCode
}

// resultErr returns nil for a successful result.
func resultErr(op string, r domain.FfiResult) error {
	if r.OK() {
		return nil
	}
	return &ResultError{Op: op, Result: r}
}
