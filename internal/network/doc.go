// Package network connects app clients to network gateways.
//
// A gateway is the first hop into the network: the bootstrap config handed
// to an app lists gateway base URLs. This package offers both sides of that
// hop:
//
//   - HTTPDialer opens a session against the first reachable contact and
//     returns a domain.NetworkSession used to ping and close it.
//   - Gateway is an http.Handler keeping an in-memory session table, used by
//     cmd/gateway and by tests.
//
// All requests are JSON over HTTP and accept a context for cancellation and
// deadlines. Non-2xx statuses are returned as *StatusError values carrying the
// HTTP method, full URL, and status text to aid diagnostics.
package network
