package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jwebster45206/tactics-console/internal/config"
)

func TestSetup_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&config.Config{Environment: "production", LogLevel: slog.LevelInfo}, &buf)

	log.Debug("hidden")
	log.Info("shown", "command", "fireFire")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "shown" || entry["command"] != "fireFire" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestSetup_DevelopmentWritesText(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&config.Config{Environment: "development", LogLevel: slog.LevelDebug}, &buf)

	WithError(log, errors.New("no board")).Debug("menu refresh")

	out := buf.String()
	if !strings.Contains(out, "msg=\"menu refresh\"") || !strings.Contains(out, "error=\"no board\"") {
		t.Errorf("unexpected text output: %q", out)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer func() {
		_ = f.Close()
	}()
	if _, err := f.WriteString("ok\n"); err != nil {
		t.Errorf("write failed: %v", err)
	}
}
