package crypto_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"safeapp/internal/crypto"
	"safeapp/internal/domain"
)

func TestNewAppKeys_DistinctAndOwned(t *testing.T) {
	owner := domain.Ed25519Public{9}
	a, err := crypto.NewAppKeys(owner)
	if err != nil {
		t.Fatalf("NewAppKeys: %v", err)
	}
	b, err := crypto.NewAppKeys(owner)
	if err != nil {
		t.Fatalf("NewAppKeys: %v", err)
	}
	if a.OwnerKey != owner {
		t.Fatalf("owner key not kept")
	}
	if a.SignPk == b.SignPk || a.EncPk == b.EncPk || a.EncKey == b.EncKey {
		t.Fatal("two key sets share material")
	}
	sig := crypto.SignEd25519(a.SignSk, []byte("hello"))
	if !crypto.VerifyEd25519(a.SignPk, []byte("hello"), sig) {
		t.Fatal("signature from generated keys does not verify")
	}
}

func TestRandomAppKeys_SelfOwned(t *testing.T) {
	k, err := crypto.RandomAppKeys()
	if err != nil {
		t.Fatalf("RandomAppKeys: %v", err)
	}
	if k.OwnerKey != k.SignPk {
		t.Fatal("unregistered keys should be owned by themselves")
	}
}

func TestSeal_AuthenticatedAndNonceBound(t *testing.T) {
	key, _ := crypto.NewSymmetricKey()
	nonce, _ := crypto.NewNonce()
	other, _ := crypto.NewNonce()

	a := crypto.Seal(key, nonce, []byte("container entry"))
	if len(a) != len("container entry")+16 {
		t.Fatalf("box is %d bytes", len(a))
	}
	if bytes.Equal(a, crypto.Seal(key, other, []byte("container entry"))) {
		t.Fatal("nonce did not change the box")
	}
}

func TestHello_SignedAndVerified(t *testing.T) {
	sk, pk, err := crypto.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	h := crypto.NewHello(sk, pk, "net.maidsafe.app")
	if err := crypto.VerifyHello(h); err != nil {
		t.Fatalf("VerifyHello: %v", err)
	}

	swapped := h
	swapped.AppID = ""
	if err := crypto.VerifyHello(swapped); !errors.Is(err, crypto.ErrHelloSignature) {
		t.Fatalf("app id change: %v", err)
	}
	_, otherPk, _ := crypto.GenerateEd25519()
	stolen := crypto.NewHello(sk, otherPk, "net.maidsafe.app")
	if err := crypto.VerifyHello(stolen); !errors.Is(err, crypto.ErrHelloSignature) {
		t.Fatalf("foreign key: %v", err)
	}
	for _, bad := range []domain.Hello{{SignPk: "zz", Sig: h.Sig}, {SignPk: h.SignPk}} {
		if err := crypto.VerifyHello(bad); !errors.Is(err, crypto.ErrHelloMalformed) {
			t.Fatalf("%+v: %v", bad, err)
		}
	}
}

func TestAccessContainerEncKey_Deterministic(t *testing.T) {
	key, _ := crypto.NewSymmetricKey()
	nonce, _ := crypto.NewNonce()

	a := crypto.AccessContainerEncKey("net.maidsafe.app", key, nonce)
	b := crypto.AccessContainerEncKey("net.maidsafe.app", key, nonce)
	if !bytes.Equal(a, b) {
		t.Fatal("same inputs gave different keys")
	}
	c := crypto.AccessContainerEncKey("net.maidsafe.other", key, nonce)
	if bytes.Equal(a, c) {
		t.Fatal("different app ids gave the same key")
	}
}

func TestXorNameOf_MatchesHash(t *testing.T) {
	data := []byte("access container")
	name, err := crypto.XorNameOf(data)
	if err != nil {
		t.Fatalf("XorNameOf: %v", err)
	}
	if [32]byte(name) != crypto.Hash(data) {
		t.Fatal("xorname is not the sha3-256 digest")
	}
	s, err := crypto.XorNameCID(name)
	if err != nil {
		t.Fatalf("XorNameCID: %v", err)
	}
	if !strings.HasPrefix(s, "b") {
		t.Fatalf("expected base32 CIDv1, got %q", s)
	}
}

func TestIdentityID_Stable(t *testing.T) {
	pk := domain.Ed25519Public{1, 2, 3}
	id := crypto.IdentityID(pk)
	if !strings.HasPrefix(id, "safe1") {
		t.Fatalf("unexpected prefix: %q", id)
	}
	if id != crypto.IdentityID(pk) {
		t.Fatal("identity id not stable")
	}
}

func TestWipeAppKeys_ClearsSecrets(t *testing.T) {
	k, _ := crypto.RandomAppKeys()
	pub := k.SignPk
	crypto.WipeAppKeys(&k)
	if k.EncKey != (domain.SymmetricKey{}) || k.SignSk != (domain.Ed25519Private{}) || k.EncSk != (domain.X25519Private{}) {
		t.Fatal("secret keys not wiped")
	}
	if k.SignPk != pub {
		t.Fatal("public key should survive wiping")
	}
}
