package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"safeapp/internal/config"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := config.Default()
	if cfg.PingInterval != def.PingInterval || cfg.Gateway.Listen != def.Gateway.Listen {
		t.Fatalf("got %+v", cfg)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := write(t, "safeapp.yaml", `
home: /tmp/safeapp-yaml
log_level: debug
contacts:
  - http://127.0.0.1:5483
  - "  "
ping_interval: 250ms
gateway:
  listen: 127.0.0.1:9000
  open_burst: 3
  limiter_idle: 90s
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Home != "/tmp/safeapp-yaml" || cfg.LogLevel != "debug" {
		t.Fatalf("got %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Contacts, []string{"http://127.0.0.1:5483"}) {
		t.Fatalf("contacts %v", cfg.Contacts)
	}
	if cfg.PingInterval != 250*time.Millisecond {
		t.Fatalf("ping interval %v", cfg.PingInterval)
	}
	if cfg.Gateway.Listen != "127.0.0.1:9000" || cfg.Gateway.OpenBurst != 3 || cfg.Gateway.LimiterIdle != 90*time.Second {
		t.Fatalf("gateway %+v", cfg.Gateway)
	}
	// Untouched keys keep their defaults.
	if cfg.DialTimeout != config.Default().DialTimeout || cfg.Gateway.OpenRate != config.Default().Gateway.OpenRate {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := write(t, "safeapp.toml", `
log_format = "json"
dial_timeout = "3s"
contacts = ["https://gw.example"]

[gateway]
open_rate = 2.5
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogFormat != "json" || cfg.DialTimeout != 3*time.Second {
		t.Fatalf("got %+v", cfg)
	}
	if cfg.Gateway.OpenRate != 2.5 || !reflect.DeepEqual(cfg.Contacts, []string{"https://gw.example"}) {
		t.Fatalf("got %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]struct{ name, body, want string }{
		"extension":    {"safeapp.ini", "", "unsupported extension"},
		"bad duration": {"a.yaml", "ping_interval: soon\n", "ping_interval"},
		"unknown key":  {"a.toml", "colour = \"blue\"\n", "unknown key"},
		"bad format":   {"a.yaml", "log_format: xml\n", "log_format"},
		"bad contact":  {"a.yaml", "contacts: [gw.example]\n", "http(s)"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(write(t, tc.name, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("got %v, want error containing %q", err, tc.want)
			}
		})
	}
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file loaded")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := write(t, "safeapp.yaml", "log_level: warn\nping_interval: 1s\n")
	t.Setenv("SAFEAPP_LOG_LEVEL", "trace")
	t.Setenv("SAFEAPP_CONTACTS", "http://a, http://b,")
	t.Setenv("SAFEAPP_GATEWAY_OPEN_BURST", "7")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "trace" || cfg.PingInterval != time.Second {
		t.Fatalf("got %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Contacts, []string{"http://a", "http://b"}) || cfg.Gateway.OpenBurst != 7 {
		t.Fatalf("got %+v", cfg)
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	cfg := config.Default()
	env := map[string]string{"SAFEAPP_DIAL_TIMEOUT": "forever"}
	if err := config.ApplyEnv(&cfg, func(k string) string { return env[k] }); err == nil {
		t.Fatal("expected parse error")
	}
}
