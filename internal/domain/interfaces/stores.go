package interfaces

import domaintypes "safeapp/internal/domain/types"

// AuthStore persists authorisation grants, encrypted under a passphrase.
type AuthStore interface {
	SaveAuth(passphrase, appID string, auth domaintypes.AuthGranted) error
	LoadAuth(passphrase, appID string) (domaintypes.AuthGranted, error)
}

// BootstrapStore keeps the last known bootstrap configuration.
type BootstrapStore interface {
	SaveBootstrapConfig(cfg domaintypes.BootstrapConfig) error
	LoadBootstrapConfig() (domaintypes.BootstrapConfig, bool, error)
}
