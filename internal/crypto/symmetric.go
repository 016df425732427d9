package crypto

import (
	"crypto/rand"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/sha3"

	"safeapp/internal/domain"
)

// NewSymmetricKey returns a random secretbox key.
func NewSymmetricKey() (k domain.SymmetricKey, err error) {
	_, err = rand.Read(k[:])
	return k, err
}

// NewNonce returns a random secretbox nonce.
func NewNonce() (n domain.Nonce, err error) {
	_, err = rand.Read(n[:])
	return n, err
}

// Hash is SHA3-256.
func Hash(b []byte) [32]byte { return sha3.Sum256(b) }

// Seal encrypts plaintext under key and nonce.
func Seal(key domain.SymmetricKey, nonce domain.Nonce, plaintext []byte) []byte {
	k := [32]byte(key)
	n := [24]byte(nonce)
	return secretbox.Seal(nil, plaintext, &n, &k)
}

// AccessContainerEncKey encrypts appID into the key under which the app's
// entry is stored in the access container. The nonce is derived from appID
// and the access container nonce, so the same inputs always give the same
// key.
func AccessContainerEncKey(appID string, appEncKey domain.SymmetricKey, accessContainerNonce domain.Nonce) []byte {
	key := []byte(appID)
	pt := make([]byte, 0, len(key)+len(accessContainerNonce))
	pt = append(pt, key...)
	pt = append(pt, accessContainerNonce[:]...)

	sum := Hash(pt)
	var keyNonce domain.Nonce
	copy(keyNonce[:], sum[:len(keyNonce)])

	return Seal(appEncKey, keyNonce, key)
}
