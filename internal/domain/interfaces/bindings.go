package interfaces

import (
	"context"

	domaintypes "safeapp/internal/domain/types"
)

// NativeBindings is implemented by the native application library. Every
// method returns immediately; outcomes arrive through the callbacks.
//
// Rules the implementation must follow:
//   - onComplete runs at most once per call, on any goroutine
//   - onDisconnect may run any number of times until the handle is freed
//   - a failed completion carries domaintypes.NoHandle
//   - the grant passed to AppRegistered is only touched while the call is
//     outstanding
type NativeBindings interface {
	AppUnregistered(
		bootstrapConfig []byte,
		onDisconnect domaintypes.DisconnectNotifierFunc,
		onComplete domaintypes.CompletionFunc,
	)
	AppRegistered(
		appID string,
		authGranted *domaintypes.AuthGranted,
		onDisconnect domaintypes.DisconnectNotifierFunc,
		onComplete domaintypes.CompletionFunc,
	)
	DecodeIpcMsg(msg string, onComplete domaintypes.DecodeCompletionFunc)
}

// AppBindings is the caller-facing surface: the two registration calls keep
// the callback shape, decoding is awaited with a context.
type AppBindings interface {
	AppUnregistered(
		bootstrapConfig []byte,
		onDisconnect domaintypes.DisconnectNotifierFunc,
		onComplete domaintypes.CompletionFunc,
	)
	AppRegistered(
		appID string,
		authGranted *domaintypes.AuthGranted,
		onDisconnect domaintypes.DisconnectNotifierFunc,
		onComplete domaintypes.CompletionFunc,
	)
	DecodeIpcMsg(ctx context.Context, msg string) (domaintypes.IpcMsg, error)
}
