package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"safeapp/internal/domain"
	"safeapp/internal/store"
)

// Cheap scrypt costs keep the tests fast.
var testKDF = store.KDFParams{N: 1 << 10, R: 8, P: 1}

func sampleGrant() domain.AuthGranted {
	return domain.AuthGranted{
		AppKeys: domain.AppKeys{
			OwnerKey: domain.Ed25519Public{1},
			EncKey:   domain.SymmetricKey{2},
			SignPk:   domain.Ed25519Public{3},
			SignSk:   domain.Ed25519Private{4},
			EncPk:    domain.X25519Public{5},
			EncSk:    domain.X25519Private{6},
		},
		BootstrapConfig:     domain.BootstrapConfig{HardCodedContacts: []string{"http://127.0.0.1:5483"}},
		AccessContainerInfo: domain.AccessContInfo{ID: domain.XorName{7}, Tag: 15000, Nonce: domain.Nonce{8}},
		AccessContainerEntry: domain.AccessContainerEntry{
			"_public": {
				MDataInfo:   domain.MDataInfo{Name: domain.XorName{9}, TypeTag: 15000},
				Permissions: domain.NewContainerPermissions(domain.PermRead, domain.PermInsert),
			},
		},
	}
}

func TestAuth_SaveLoad_OK(t *testing.T) {
	var s domain.AuthStore = store.NewAuthFileStoreKDF(t.TempDir(), testKDF)
	want := sampleGrant()

	if err := s.SaveAuth("pass", "net.maidsafe.example", want); err != nil {
		t.Fatalf("save grant: %v", err)
	}
	got, err := s.LoadAuth("pass", "net.maidsafe.example")
	if err != nil {
		t.Fatalf("load grant: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("mismatch after load:\n got %+v\nwant %+v", got, want)
	}
}

func TestAuth_WrongPassphrase_Fails(t *testing.T) {
	s := store.NewAuthFileStoreKDF(t.TempDir(), testKDF)
	if err := s.SaveAuth("correct", "app", sampleGrant()); err != nil {
		t.Fatalf("save grant: %v", err)
	}
	if _, err := s.LoadAuth("wrong", "app"); !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("expected ErrWrongPassphrase, got %v", err)
	}
}

func TestAuth_MissingGrant(t *testing.T) {
	s := store.NewAuthFileStoreKDF(t.TempDir(), testKDF)
	if _, err := s.LoadAuth("pass", "nobody"); !errors.Is(err, store.ErrNoGrant) {
		t.Fatalf("expected ErrNoGrant, got %v", err)
	}
}

func TestAuth_BoundToAppID(t *testing.T) {
	home := t.TempDir()
	s := store.NewAuthFileStoreKDF(home, testKDF)
	if err := s.SaveAuth("pass", "app-a", sampleGrant()); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if err := s.SaveAuth("pass", "app-b", sampleGrant()); err != nil {
		t.Fatalf("save b: %v", err)
	}

	// Swap the two files on disk: each must refuse to open as the other.
	dir := filepath.Join(home, "auth")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var grants []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".enc" {
			grants = append(grants, filepath.Join(dir, e.Name()))
		}
	}
	if len(grants) != 2 {
		t.Fatalf("found %d grant files", len(grants))
	}
	a, _ := os.ReadFile(grants[0])
	b, _ := os.ReadFile(grants[1])
	if err := os.WriteFile(grants[0], b, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(grants[1], a, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadAuth("pass", "app-a"); !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("swapped grant opened: %v", err)
	}
}

func TestAuth_FileMode(t *testing.T) {
	home := t.TempDir()
	s := store.NewAuthFileStoreKDF(home, testKDF)
	if err := s.SaveAuth("pass", "app", sampleGrant()); err != nil {
		t.Fatalf("save grant: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(home, "auth", "*.json.enc"))
	if len(matches) != 1 {
		t.Fatalf("found %v", matches)
	}
	fi, err := os.Stat(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Fatalf("mode %v", fi.Mode().Perm())
	}
}

func TestAuth_AppsAndDelete(t *testing.T) {
	s := store.NewAuthFileStoreKDF(t.TempDir(), testKDF)
	for _, id := range []string{"b", "a", "b"} {
		if err := s.SaveAuth("pass", id, sampleGrant()); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	apps, err := s.Apps()
	if err != nil || !reflect.DeepEqual(apps, []string{"a", "b"}) {
		t.Fatalf("apps %v %v", apps, err)
	}
	if err := s.DeleteAuth("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteAuth("a"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	apps, _ = s.Apps()
	if !reflect.DeepEqual(apps, []string{"b"}) {
		t.Fatalf("apps after delete %v", apps)
	}
	if _, err := s.LoadAuth("pass", "a"); !errors.Is(err, store.ErrNoGrant) {
		t.Fatalf("deleted grant loaded: %v", err)
	}
}

func TestAuth_DeleteOnFreshStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "home", "auth")
	s := store.NewAuthFileStoreKDF(dir, testKDF)
	if err := s.DeleteAuth("net.maidsafe.never-saved"); err != nil {
		t.Fatalf("delete on fresh store: %v", err)
	}
	if apps, err := s.Apps(); err != nil || len(apps) != 0 {
		t.Fatalf("apps %v %v", apps, err)
	}
	if err := s.SaveAuth("pass", "a", sampleGrant()); err != nil {
		t.Fatalf("save after delete: %v", err)
	}
}

func TestAuth_EmptyAppID(t *testing.T) {
	s := store.NewAuthFileStoreKDF(t.TempDir(), testKDF)
	if err := s.SaveAuth("pass", " ", sampleGrant()); err == nil {
		t.Fatal("expected error for blank app id")
	}
}

func TestAuth_EmptyPassphrase(t *testing.T) {
	s := store.NewAuthFileStoreKDF(t.TempDir(), testKDF)
	if err := s.SaveAuth("", "a", sampleGrant()); !errors.Is(err, store.ErrEmptyPassphrase) {
		t.Fatalf("got %v", err)
	}
	if apps, _ := s.Apps(); len(apps) != 0 {
		t.Fatalf("grant indexed: %v", apps)
	}
}

func TestBootstrap_SaveLoad(t *testing.T) {
	var s domain.BootstrapStore = store.NewBootstrapFileStore(filepath.Join(t.TempDir(), "nested"))

	if _, ok, err := s.LoadBootstrapConfig(); err != nil || ok {
		t.Fatalf("fresh store: ok=%v err=%v", ok, err)
	}
	want := domain.BootstrapConfig{HardCodedContacts: []string{"http://a", "http://b"}}
	if err := s.SaveBootstrapConfig(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := s.LoadBootstrapConfig()
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v", got)
	}
}
