package crypto

import "safeapp/internal/domain"

// NewAppKeys generates a complete key set for an app owned by owner.
func NewAppKeys(owner domain.Ed25519Public) (domain.AppKeys, error) {
	encSk, encPk, err := GenerateX25519()
	if err != nil {
		return domain.AppKeys{}, err
	}
	signSk, signPk, err := GenerateEd25519()
	if err != nil {
		return domain.AppKeys{}, err
	}
	encKey, err := NewSymmetricKey()
	if err != nil {
		return domain.AppKeys{}, err
	}
	return domain.AppKeys{
		OwnerKey: owner,
		EncKey:   encKey,
		SignPk:   signPk,
		SignSk:   signSk,
		EncPk:    encPk,
		EncSk:    encSk,
	}, nil
}

// RandomAppKeys generates keys for an unregistered client. The owner key is
// the client's own signing key.
func RandomAppKeys() (domain.AppKeys, error) {
	keys, err := NewAppKeys(domain.Ed25519Public{})
	if err != nil {
		return domain.AppKeys{}, err
	}
	keys.OwnerKey = keys.SignPk
	return keys, nil
}
