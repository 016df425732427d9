// Package app wires application dependencies for the CLI.
//
// NewWire builds the file stores, the HTTP dialer, the native runtime and
// the binding shim in front of it. App layers the CLI operations on top:
// importing authenticator responses, connecting registered and unregistered
// clients, and summarising stored grants.
package app
