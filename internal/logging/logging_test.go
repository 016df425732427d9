package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"safeapp/internal/logging"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New("safeapp", "warn", "json", &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info().Msg("hidden")
	log.Warn().Str("op", "test").Msg("shown")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected exactly one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "shown" || entry["app"] != "safeapp" || entry["op"] != "test" {
		t.Fatalf("entry %v", entry)
	}
}

func TestNew_Errors(t *testing.T) {
	var buf bytes.Buffer
	if _, err := logging.New("x", "loud", "json", &buf); err == nil {
		t.Fatal("bad level accepted")
	}
	if _, err := logging.New("x", "info", "xml", &buf); err == nil {
		t.Fatal("bad format accepted")
	}
}
