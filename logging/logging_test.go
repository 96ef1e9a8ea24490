package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"snake-sim/config"

	log "github.com/sirupsen/logrus"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LogConfig{Level: "debug", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if logger.GetLevel() != log.DebugLevel {
		t.Fatalf("level = %v, want debug", logger.GetLevel())
	}

	logger.WithField("session", "abc").Debug("tick")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output %q is not json: %v", buf.String(), err)
	}
	if entry["msg"] != "tick" || entry["session"] != "abc" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestNewTextFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LogConfig{Level: "warn"}, &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("output = %q", out)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "loud"}, nil); err == nil {
		t.Fatalf("New(loud) succeeded, want error")
	}
}
