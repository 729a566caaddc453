package logging_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reshelf/internal/logging"
	"reshelf/internal/services"
)

func TestNewWritesConsoleFormat(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "reshelf.log")

	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("rename completed", logging.String(logging.FieldComponent, "renamer"), logging.String("new_path", "/tmp/a b.mkv"))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "INFO renamer: rename completed") {
		t.Fatalf("unexpected log line: %q", line)
	}
	if !strings.Contains(line, `new_path="/tmp/a b.mkv"`) {
		t.Fatalf("expected quoted attr value in %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsFields(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "ctx.log")
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := services.WithSceneID(context.Background(), "42")
	ctx = services.WithRunID(ctx, "run-1")
	logging.WithContext(ctx, logger).Info("processing scene")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "scene_id=42") || !strings.Contains(line, "run_id=run-1") {
		t.Fatalf("expected context fields in %q", line)
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("should not panic", logging.Error(nil))
}
