// Package main runs the HTTP gateway app clients open network sessions
// against. It is meant for local development and tests.
//
// HTTP API
//
//	POST /v1/sessions
//	    Open a session. Body: {"sign_pk": "<hex>", "app_id": "<optional>",
//	    "sig": "<hex>"}, where sig is the Ed25519 signature of the client
//	    over its key and app id. Answers 201 with {"id": "..."}; 400 for a
//	    malformed key or signature, 401 when the signature does not verify
//	    and 429 when the caller opens sessions too fast.
//
//	GET /v1/sessions/{id}
//	    Liveness check used by client pings. 404 once the session is gone.
//
//	DELETE /v1/sessions/{id}
//	    Close a session.
//
//	GET /metrics
//	    Prometheus metrics.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - SIGHUP drops every session, which clients observe as a disconnect.
//   - The listen address and rate limits come from the safeapp config
//     (gateway.listen, gateway.open_rate, gateway.open_burst and
//     gateway.limiter_idle).
package main
