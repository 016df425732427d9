package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/mr-tron/base58/base58"
	"golang.org/x/crypto/blake2b"

	"safeapp/internal/domain"
)

// identityIDPrefix marks ids derived from app signing keys.
const identityIDPrefix = "safe1"

// Fingerprint returns a short hex fingerprint of a public key.
//
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(pub []byte) string {
	sum := sha256.Sum256(pub)
	return hex.EncodeToString(sum[:10])
}

// IdentityID renders an app's network identity for display, e.g. in logs
// and CLI output.
func IdentityID(signPk domain.Ed25519Public) string {
	h := blake2b.Sum256(signPk[:])
	return identityIDPrefix + base58.Encode(h[:])
}
