package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"

	"safeapp/internal/domain"
)

var (
	// ErrHelloMalformed is returned for a hello whose key or signature does
	// not decode.
	ErrHelloMalformed = errors.New("hello: malformed key or signature")
	// ErrHelloSignature is returned when the signature does not match.
	ErrHelloSignature = errors.New("hello: signature does not verify")
)

const helloContext = "safeapp/hello/v1"

func helloPayload(h domain.Hello) []byte {
	b := make([]byte, 0, len(helloContext)+len(h.SignPk)+len(h.AppID)+2)
	b = append(b, helloContext...)
	b = append(b, 0)
	b = append(b, h.SignPk...)
	b = append(b, 0)
	return append(b, h.AppID...)
}

// NewHello builds a hello for signPk acting as appID (empty when
// unregistered), signed with signSk.
func NewHello(signSk domain.Ed25519Private, signPk domain.Ed25519Public, appID string) domain.Hello {
	h := domain.Hello{SignPk: hex.EncodeToString(signPk[:]), AppID: appID}
	h.Sig = hex.EncodeToString(SignEd25519(signSk, helloPayload(h)))
	return h
}

// VerifyHello checks that h was signed by the key it names.
func VerifyHello(h domain.Hello) error {
	pk, err := hex.DecodeString(h.SignPk)
	if err != nil || len(pk) != len(domain.Ed25519Public{}) {
		return fmt.Errorf("%w: sign_pk must be 32 hex encoded bytes", ErrHelloMalformed)
	}
	sig, err := hex.DecodeString(h.Sig)
	if err != nil || len(sig) == 0 {
		return fmt.Errorf("%w: sig must be hex", ErrHelloMalformed)
	}
	if !VerifyEd25519(domain.Ed25519Public(pk), helloPayload(h), sig) {
		return ErrHelloSignature
	}
	return nil
}
