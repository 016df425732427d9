// Package store provides file-based persistence for app grants and
// bootstrap configuration.
//
// Grants hold secret keys, so AuthFileStore encrypts each one under a
// passphrase (scrypt + ChaCha20-Poly1305) and binds the ciphertext to the
// app id it was saved for. BootstrapFileStore keeps the last known contact
// list as plain JSON. Every write goes through a temp file and a rename, and
// all methods are safe for concurrent use.
package store
