package native

import (
	"context"
	"errors"
	"fmt"

	"safeapp/internal/domain"
)

var (
	// ErrShutdown is reported for calls made after Shutdown.
	ErrShutdown = errors.New("native: runtime shut down")
	// ErrNoSuchHandle is returned for handles the runtime did not issue or
	// already freed.
	ErrNoSuchHandle = errors.New("native: no such handle")
)

// codedError pins an error to a result code.
type codedError struct {
	code int32
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func invalidArgument(format string, args ...any) error {
	return &codedError{code: domain.CodeInvalidArgument, err: fmt.Errorf(format, args...)}
}

func routingError(err error) error {
	return &codedError{code: domain.CodeRoutingError, err: err}
}

// resultFor converts err into the FfiResult delivered to callbacks.
func resultFor(err error) domain.FfiResult {
	if err == nil {
		return domain.ResultOK
	}
	var ipcErr *domain.IpcError
	if errors.As(err, &ipcErr) {
		return ipcErr.Result()
	}
	code := domain.CodeUnexpected
	var ce *codedError
	switch {
	case errors.Is(err, ErrShutdown), errors.Is(err, context.Canceled):
		code = domain.CodeOperationAborted
	case errors.Is(err, context.DeadlineExceeded):
		code = domain.CodeRequestTimeout
	case errors.Is(err, ErrNoSuchHandle):
		code = domain.CodeNoSuchHandle
	case errors.As(err, &ce):
		code = ce.code
	}
	return domain.FfiResult{ErrorCode: code, Description: err.Error()}
}
