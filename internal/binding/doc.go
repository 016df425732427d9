// Package binding is the shim between callers and the native application
// library.
//
// It forwards AppUnregistered, AppRegistered and IPC decoding to a
// domain.NativeBindings implementation without touching the arguments: the
// bootstrap config slice and the grant pointer reach the native side as they
// were passed in. What the shim adds is bookkeeping at the boundary:
//
//   - completion callbacks run at most once per call; duplicates from the
//     native side are dropped and logged
//   - disconnect callbacks are forwarded every time they fire
//   - decoding is exposed as a Future, so callers never block on the native
//     side and can await the result with a context
//
// ConnectUnregistered and ConnectRegistered present the callback pair as two
// values: a single-resolution Future for completion and a Notifier
// subscription for disconnects.
//
// Nothing here can cancel a native call. Waiting with a cancelled context
// returns early, but the call still completes on the native side.
package binding
