package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "bubbles", "debug")
	if err != nil {
		t.Fatal(err)
	}
	if logger.GetLevel() != log.DebugLevel {
		t.Fatalf("level = %v, want debug", logger.GetLevel())
	}
	logger.Debug("tick", "n", 3)
	if !strings.Contains(buf.String(), "tick") || !strings.Contains(buf.String(), "n=3") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestNewLoggerBadLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "", "loud")
	if err == nil {
		t.Fatal("expected error for unknown level")
	}
	if logger == nil || logger.GetLevel() != log.InfoLevel {
		t.Fatalf("fallback logger not at info")
	}
}
