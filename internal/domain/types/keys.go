package types

// X25519Public is a Curve25519 public key.
type X25519Public [32]byte

// Slice returns the key as a []byte.
func (p X25519Public) Slice() []byte { return p[:] }

// X25519Private is a Curve25519 private key.
type X25519Private [32]byte

// Slice returns the key as a []byte.
func (k X25519Private) Slice() []byte { return k[:] }

// Ed25519Public is an Ed25519 signing public key.
type Ed25519Public [32]byte

// Slice returns the key as a []byte.
func (p Ed25519Public) Slice() []byte { return p[:] }

// Ed25519Private is an Ed25519 signing private key.
type Ed25519Private [64]byte

// Slice returns the key as a []byte.
func (k Ed25519Private) Slice() []byte { return k[:] }

// SymmetricKey is a secretbox key.
type SymmetricKey [32]byte

// Slice returns the key as a []byte.
func (k SymmetricKey) Slice() []byte { return k[:] }

// Nonce is a secretbox nonce.
type Nonce [24]byte

// Slice returns the nonce as a []byte.
func (n Nonce) Slice() []byte { return n[:] }

// XorName is a 256-bit network address.
type XorName [32]byte

// Slice returns the name as a []byte.
func (x XorName) Slice() []byte { return x[:] }

// AppKeys are the keys an authenticator grants to an app.
type AppKeys struct {
	// OwnerKey is the signing key of the account owning the app.
	OwnerKey Ed25519Public `json:"owner_key"`
	// EncKey is the symmetric data encryption key.
	EncKey SymmetricKey `json:"enc_key"`
	// SignPk is the identity of the app on the network.
	SignPk Ed25519Public  `json:"sign_pk"`
	SignSk Ed25519Private `json:"sign_sk"`
	EncPk  X25519Public   `json:"enc_pk"`
	EncSk  X25519Private  `json:"enc_sk"`
}
