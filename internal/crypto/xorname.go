package crypto

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"safeapp/internal/domain"
)

// XorNameOf derives a network address from data (SHA3-256).
func XorNameOf(data []byte) (domain.XorName, error) {
	var out domain.XorName
	mh, err := multihash.Sum(data, multihash.SHA3_256, -1)
	if err != nil {
		return out, err
	}
	dec, err := multihash.Decode(mh)
	if err != nil {
		return out, err
	}
	if len(dec.Digest) != len(out) {
		return out, fmt.Errorf("xorname: digest is %d bytes", len(dec.Digest))
	}
	copy(out[:], dec.Digest)
	return out, nil
}

// XorNameCID renders name as a CIDv1 (raw codec, sha3-256 multihash) so it
// can be shown and compared as text.
func XorNameCID(name domain.XorName) (string, error) {
	mh, err := multihash.Encode(name[:], multihash.SHA3_256)
	if err != nil {
		return "", err
	}
	return cid.NewCidV1(cid.Raw, mh).String(), nil
}
