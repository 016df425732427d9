// Package native is the Go implementation of the application library that
// package binding talks to.
//
// A Runtime hands out opaque handles for app clients. Each client holds a
// session with one gateway from its bootstrap config and runs a watcher
// goroutine that pings it. When a ping fails the client reports a disconnect
// and keeps redialling; once it is back, a later failure is reported again.
//
// Argument checks and parsing happen before a call returns, so the bootstrap
// config and the grant are never read after that. Dialling and decoding run
// on their own goroutines and report through the completion callbacks.
package native
