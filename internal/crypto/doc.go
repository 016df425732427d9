// Package crypto exposes the primitives used by the app runtime.
//
// Contents
//
//   - X25519 and Ed25519 key generation (GenerateX25519, GenerateEd25519)
//   - App key sets handed out by an authenticator (NewAppKeys)
//   - Secretbox sealing with symmetric keys and nonces (Seal)
//   - SHA3-256 hashing, XorName derivation and CID rendering
//     (Hash, XorNameOf, XorNameCID)
//   - Access container key encryption (AccessContainerEncKey)
//   - Human readable identity ids and fingerprints (IdentityID, Fingerprint)
//   - Signed session hellos (NewHello, VerifyHello)
//   - Best-effort memory wiping for sensitive byte slices (Wipe, WipeAppKeys)
//
// # Notes
//
// All functions return fixed-size array types defined in internal/domain to
// avoid accidental reallocations. Callers should treat returned secrets as
// sensitive and rely on Wipe when practical to reduce lifetime in memory.
package crypto
