// Package commands defines the safeapp CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - keys                 Generate a throwaway app identity
//   - auth import          Store the grant or bootstrap config from an authenticator response
//   - auth show            Summarise a stored grant, or list stored apps
//   - register             Connect to the network with a stored grant
//   - unregistered         Connect to the network without a grant
//   - decode               Decode an IPC message and print it as JSON
//   - encode-unregistered  Print an IPC request for a bootstrap config
//
// # Implementation
//
// The root command loads the config file and SAFEAPP_* overrides, applies
// flags on top, and builds the stores, native runtime and binding shim before
// any subcommand runs. Every live handle is freed when the command returns.
package commands
