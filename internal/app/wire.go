package app

import (
	"net/http"

	"safeapp/internal/binding"
	"safeapp/internal/native"
	"safeapp/internal/network"
	"safeapp/internal/store"
)

// Wire bundles the stores, the native runtime and the binding shim for the
// CLI.
type Wire struct {
	Auth      *store.AuthFileStore
	Bootstrap *store.BootstrapFileStore
	Dialer    *network.HTTPDialer
	Runtime   *native.Runtime
	Bindings  *binding.Bindings
	HTTP      *http.Client
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if err := store.EnsureDir(cfg.Home); err != nil {
		return nil, err
	}

	kdf := cfg.KDF
	if kdf == (store.KDFParams{}) {
		kdf = store.DefaultKDF
	}
	authStore := store.NewAuthFileStoreKDF(cfg.Home, kdf)
	bootstrapStore := store.NewBootstrapFileStore(cfg.Home)

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	dialer := network.NewHTTPDialer(httpClient, cfg.Logger)

	rt := native.New(native.Options{
		Dialer:          dialer,
		DefaultContacts: cfg.Contacts,
		PingInterval:    cfg.PingInterval,
		DialTimeout:     cfg.DialTimeout,
		Logger:          cfg.Logger,
	})
	shim := binding.New(rt, binding.Options{
		Logger:     cfg.Logger,
		Registerer: cfg.Registerer,
	})

	return &Wire{
		Auth:      authStore,
		Bootstrap: bootstrapStore,
		Dialer:    dialer,
		Runtime:   rt,
		Bindings:  shim,
		HTTP:      httpClient,
	}, nil
}

// Close frees every handle the runtime still holds.
func (w *Wire) Close() error {
	return w.Runtime.Shutdown()
}
