package store

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"safeapp/internal/crypto"
	"safeapp/internal/domain"
)

const (
	authDir   = "auth"
	indexFile = "apps.json"
)

// ErrNoGrant is returned by LoadAuth when nothing was saved for the app.
var ErrNoGrant = errors.New("store: no grant for app")

// ErrEmptyPassphrase is returned when a grant would be sealed under an
// empty passphrase.
var ErrEmptyPassphrase = errors.New("store: empty passphrase")

// AuthFileStore keeps one encrypted grant per app id under dir/auth.
type AuthFileStore struct {
	dir string
	kdf KDFParams
	mu  sync.Mutex
}

// NewAuthFileStore returns a store rooted at dir using DefaultKDF.
func NewAuthFileStore(dir string) *AuthFileStore {
	return NewAuthFileStoreKDF(dir, DefaultKDF)
}

// NewAuthFileStoreKDF is NewAuthFileStore with explicit scrypt costs.
func NewAuthFileStoreKDF(dir string, kdf KDFParams) *AuthFileStore {
	return &AuthFileStore{dir: filepath.Join(dir, authDir), kdf: kdf}
}

// grantFile names the file for appID without leaking the id itself.
func grantFile(appID string) string {
	sum := crypto.Hash([]byte(appID))
	return hex.EncodeToString(sum[:12]) + ".json.enc"
}

// SaveAuth encrypts auth under passphrase and replaces any earlier grant
// for appID.
func (s *AuthFileStore) SaveAuth(passphrase, appID string, auth domain.AuthGranted) error {
	if strings.TrimSpace(appID) == "" {
		return fmt.Errorf("store: empty app id")
	}
	if passphrase == "" {
		return ErrEmptyPassphrase
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := EnsureDir(s.dir); err != nil {
		return err
	}
	raw, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("store: encode grant: %w", err)
	}
	defer crypto.Wipe(raw)

	blob, err := seal(passphrase, appID, raw, s.kdf)
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(s.dir, grantFile(appID)), blob, secretMode); err != nil {
		return fmt.Errorf("store: write grant: %w", err)
	}
	return s.addToIndex(appID)
}

// LoadAuth decrypts the grant saved for appID.
func (s *AuthFileStore) LoadAuth(passphrase, appID string) (domain.AuthGranted, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := readFile(filepath.Join(s.dir, grantFile(appID)))
	if err != nil {
		return domain.AuthGranted{}, fmt.Errorf("store: read grant: %w", err)
	}
	if blob == nil {
		return domain.AuthGranted{}, fmt.Errorf("%w %q", ErrNoGrant, appID)
	}
	raw, err := open(passphrase, appID, blob)
	if err != nil {
		return domain.AuthGranted{}, err
	}
	defer crypto.Wipe(raw)

	var auth domain.AuthGranted
	if err := json.Unmarshal(raw, &auth); err != nil {
		return domain.AuthGranted{}, fmt.Errorf("store: decode grant: %w", err)
	}
	return auth, nil
}

// Apps lists the app ids with a saved grant, sorted.
func (s *AuthFileStore) Apps() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readIndex()
}

// DeleteAuth removes the grant for appID. Deleting a missing grant, even
// from a store that was never written, is not an error.
func (s *AuthFileStore) DeleteAuth(appID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir, grantFile(appID)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: delete grant: %w", err)
	}
	ids, err := s.readIndex()
	if err != nil {
		return err
	}
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != appID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(ids) {
		return nil
	}
	return writeJSON(filepath.Join(s.dir, indexFile), kept, secretMode)
}

func (s *AuthFileStore) readIndex() ([]string, error) {
	var ids []string
	if _, err := readJSON(filepath.Join(s.dir, indexFile), &ids); err != nil {
		return nil, fmt.Errorf("store: read index: %w", err)
	}
	return ids, nil
}

func (s *AuthFileStore) addToIndex(appID string) error {
	ids, err := s.readIndex()
	if err != nil {
		return err
	}
	i := sort.SearchStrings(ids, appID)
	if i < len(ids) && ids[i] == appID {
		return nil
	}
	ids = append(ids, "")
	copy(ids[i+1:], ids[i:])
	ids[i] = appID
	return writeJSON(filepath.Join(s.dir, indexFile), ids, secretMode)
}

var _ domain.AuthStore = (*AuthFileStore)(nil)
