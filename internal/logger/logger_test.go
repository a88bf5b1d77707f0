package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewWithWriter_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf, Options{})

	log.WithModule("engine").WithField("intent", "courses").Info("resolved")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}

	if record["message"] != "resolved" {
		t.Errorf("expected message 'resolved', got %v", record["message"])
	}
	if record["level"] != "info" {
		t.Errorf("expected level 'info', got %v", record["level"])
	}
	if record["module"] != "engine" {
		t.Errorf("expected module 'engine', got %v", record["module"])
	}
	if record["intent"] != "courses" {
		t.Errorf("expected intent 'courses', got %v", record["intent"])
	}
	if _, ok := record["timestamp"]; !ok {
		t.Error("expected timestamp field")
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("warn", &buf, Options{})

	log.Info("hidden")
	log.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(out, "visible") {
		t.Error("warn record should pass at warn level")
	}
}

func TestNewWithWriter_WarnLevelName(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf, Options{})

	log.Warn("check")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["level"] != "warning" {
		t.Errorf("expected level 'warning', got %v", record["level"])
	}
}
