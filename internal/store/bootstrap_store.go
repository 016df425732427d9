package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"safeapp/internal/domain"
)

const bootstrapFile = "bootstrap.json"

// BootstrapFileStore keeps the last bootstrap config an authenticator handed
// out, so unregistered clients can start without asking again.
type BootstrapFileStore struct {
	dir string
	mu  sync.Mutex
}

func NewBootstrapFileStore(dir string) *BootstrapFileStore {
	return &BootstrapFileStore{dir: dir}
}

func (s *BootstrapFileStore) SaveBootstrapConfig(cfg domain.BootstrapConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := EnsureDir(s.dir); err != nil {
		return err
	}
	if cfg.HardCodedContacts == nil {
		cfg.HardCodedContacts = []string{}
	}
	if err := writeJSON(filepath.Join(s.dir, bootstrapFile), cfg, publicMode); err != nil {
		return fmt.Errorf("store: write bootstrap config: %w", err)
	}
	return nil
}

// LoadBootstrapConfig reports false when nothing has been saved yet.
func (s *BootstrapFileStore) LoadBootstrapConfig() (domain.BootstrapConfig, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cfg domain.BootstrapConfig
	ok, err := readJSON(filepath.Join(s.dir, bootstrapFile), &cfg)
	if err != nil {
		return domain.BootstrapConfig{}, false, fmt.Errorf("store: read bootstrap config: %w", err)
	}
	return cfg, ok, nil
}

var _ domain.BootstrapStore = (*BootstrapFileStore)(nil)
