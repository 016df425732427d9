package app

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"safeapp/internal/config"
	"safeapp/internal/store"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home         string   // grants and bootstrap cache, e.g. $HOME/.safeapp
	Contacts     []string // fallback gateway contacts
	PingInterval time.Duration
	DialTimeout  time.Duration
	HTTP         *http.Client // optional; defaults to http.DefaultClient
	Logger       zerolog.Logger
	Registerer   prometheus.Registerer // optional
	KDF          store.KDFParams       // optional; defaults to store.DefaultKDF
}

// ConfigFrom maps loaded settings onto a wiring Config.
func ConfigFrom(s config.Config, log zerolog.Logger) Config {
	return Config{
		Home:         s.Home,
		Contacts:     append([]string(nil), s.Contacts...),
		PingInterval: s.PingInterval,
		DialTimeout:  s.DialTimeout,
		Logger:       log,
	}
}
