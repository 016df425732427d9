// Package config loads safeapp settings from an optional YAML or TOML file
// and SAFEAPP_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the resolved configuration.
type Config struct {
	// Home holds grants and the cached bootstrap config.
	Home      string
	LogLevel  string
	LogFormat string
	// Contacts are used when a grant or bootstrap config has none.
	Contacts     []string
	PingInterval time.Duration
	DialTimeout  time.Duration
	Gateway      GatewayConfig
}

// GatewayConfig configures cmd/gateway.
type GatewayConfig struct {
	Listen    string
	OpenRate  float64
	OpenBurst int
	// LimiterIdle is how long a host's rate bucket survives without requests.
	LimiterIdle time.Duration
}

// Default returns the built-in settings.
func Default() Config {
	home := ".safeapp"
	if dir, err := os.UserHomeDir(); err == nil {
		home = filepath.Join(dir, ".safeapp")
	}
	return Config{
		Home:         home,
		LogLevel:     "info",
		LogFormat:    "console",
		Contacts:     []string{},
		PingInterval: 10 * time.Second,
		DialTimeout:  20 * time.Second,
		Gateway: GatewayConfig{
			Listen:      "127.0.0.1:5483",
			OpenRate:    5,
			OpenBurst:   10,
			LimiterIdle: 10 * time.Minute,
		},
	}
}

// fileConfig mirrors Config with every field optional.
type fileConfig struct {
	Home         *string           `yaml:"home" toml:"home"`
	LogLevel     *string           `yaml:"log_level" toml:"log_level"`
	LogFormat    *string           `yaml:"log_format" toml:"log_format"`
	Contacts     []string          `yaml:"contacts" toml:"contacts"`
	PingInterval *string           `yaml:"ping_interval" toml:"ping_interval"`
	DialTimeout  *string           `yaml:"dial_timeout" toml:"dial_timeout"`
	Gateway      fileGatewayConfig `yaml:"gateway" toml:"gateway"`
}

type fileGatewayConfig struct {
	Listen      *string  `yaml:"listen" toml:"listen"`
	OpenRate    *float64 `yaml:"open_rate" toml:"open_rate"`
	OpenBurst   *int     `yaml:"open_burst" toml:"open_burst"`
	LimiterIdle *string  `yaml:"limiter_idle" toml:"limiter_idle"`
}

// Load resolves the configuration. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := merge(&cfg, raw); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := ApplyEnv(&cfg, os.Getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	var raw fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return raw, fmt.Errorf("load config: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return raw, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return raw, fmt.Errorf("load config: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return raw, fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
		}
	default:
		return raw, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
	return raw, nil
}

func merge(dst *Config, src fileConfig) error {
	if src.Home != nil {
		dst.Home = strings.TrimSpace(*src.Home)
	}
	if src.LogLevel != nil {
		dst.LogLevel = strings.TrimSpace(*src.LogLevel)
	}
	if src.LogFormat != nil {
		dst.LogFormat = strings.TrimSpace(*src.LogFormat)
	}
	if src.Contacts != nil {
		dst.Contacts = normalizeContacts(src.Contacts)
	}
	if src.PingInterval != nil {
		d, err := parseDuration("ping_interval", *src.PingInterval)
		if err != nil {
			return err
		}
		dst.PingInterval = d
	}
	if src.DialTimeout != nil {
		d, err := parseDuration("dial_timeout", *src.DialTimeout)
		if err != nil {
			return err
		}
		dst.DialTimeout = d
	}
	if src.Gateway.Listen != nil {
		dst.Gateway.Listen = strings.TrimSpace(*src.Gateway.Listen)
	}
	if src.Gateway.OpenRate != nil {
		dst.Gateway.OpenRate = *src.Gateway.OpenRate
	}
	if src.Gateway.OpenBurst != nil {
		dst.Gateway.OpenBurst = *src.Gateway.OpenBurst
	}
	if src.Gateway.LimiterIdle != nil {
		d, err := parseDuration("gateway.limiter_idle", *src.Gateway.LimiterIdle)
		if err != nil {
			return err
		}
		dst.Gateway.LimiterIdle = d
	}
	return nil
}

// ApplyEnv overrides cfg from SAFEAPP_* variables read through getenv.
// Unset or blank variables leave the setting alone.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	if v := get("SAFEAPP_HOME"); v != "" {
		cfg.Home = v
	}
	if v := get("SAFEAPP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := get("SAFEAPP_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := get("SAFEAPP_CONTACTS"); v != "" {
		cfg.Contacts = normalizeContacts(strings.Split(v, ","))
	}
	if v := get("SAFEAPP_PING_INTERVAL"); v != "" {
		d, err := parseDuration("SAFEAPP_PING_INTERVAL", v)
		if err != nil {
			return err
		}
		cfg.PingInterval = d
	}
	if v := get("SAFEAPP_DIAL_TIMEOUT"); v != "" {
		d, err := parseDuration("SAFEAPP_DIAL_TIMEOUT", v)
		if err != nil {
			return err
		}
		cfg.DialTimeout = d
	}
	if v := get("SAFEAPP_GATEWAY_LISTEN"); v != "" {
		cfg.Gateway.Listen = v
	}
	if v := get("SAFEAPP_GATEWAY_OPEN_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse SAFEAPP_GATEWAY_OPEN_RATE: %w", err)
		}
		cfg.Gateway.OpenRate = f
	}
	if v := get("SAFEAPP_GATEWAY_OPEN_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse SAFEAPP_GATEWAY_OPEN_BURST: %w", err)
		}
		cfg.Gateway.OpenBurst = n
	}
	if v := get("SAFEAPP_GATEWAY_LIMITER_IDLE"); v != "" {
		d, err := parseDuration("SAFEAPP_GATEWAY_LIMITER_IDLE", v)
		if err != nil {
			return err
		}
		cfg.Gateway.LimiterIdle = d
	}
	return nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if c.Home == "" {
		return fmt.Errorf("config: home must not be empty")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("config: log_format %q is not console or json", c.LogFormat)
	}
	if c.DialTimeout <= 0 {
		return fmt.Errorf("config: dial_timeout must be positive, got %s", c.DialTimeout)
	}
	if c.Gateway.OpenRate < 0 || c.Gateway.OpenBurst < 0 || c.Gateway.LimiterIdle < 0 {
		return fmt.Errorf("config: gateway rate limits must not be negative")
	}
	for _, contact := range c.Contacts {
		if !strings.HasPrefix(contact, "http://") && !strings.HasPrefix(contact, "https://") {
			return fmt.Errorf("config: contact %q is not an http(s) URL", contact)
		}
	}
	return nil
}

func parseDuration(name, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	return d, nil
}

func normalizeContacts(in []string) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		if v := strings.TrimSpace(c); v != "" {
			out = append(out, v)
		}
	}
	return out
}
