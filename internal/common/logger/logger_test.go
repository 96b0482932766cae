package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/AlibekovAA/profile-cards/internal/common/constants"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "profiles", "warn")

	log.Info("hidden")
	log.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "[WARNING] [profiles]") || !strings.Contains(out, "visible") {
		t.Errorf("expected warning line with service prefix, got %q", out)
	}
	if log.ShouldLog(DEBUG) {
		t.Errorf("debug should not be enabled at warn level")
	}
}

func TestLogger_WithFieldsSortedAndTraced(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "profiles", "debug")
	ctx := context.WithValue(context.Background(), constants.TraceIDKey, "abc")

	log.WithFields(ctx, Fields{"users": 3, "action": "fetch_succeeded"}).Info("users loaded")

	out := buf.String()
	if !strings.Contains(out, "[trace_id=abc action=fetch_succeeded users=3]") {
		t.Errorf("unexpected field rendering: %q", out)
	}
}

func TestNew_EmptyDirUsesStdout(t *testing.T) {
	log, err := New("", "test", "info")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !log.ShouldLog(INFO) {
		t.Errorf("expected info enabled")
	}
}

func TestNew_CreatesLogDir(t *testing.T) {
	dir := t.TempDir() + "/logs"
	log, err := New(dir, "test", "error")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.ShouldLog(WARNING) {
		t.Errorf("expected warning disabled at error level")
	}
}

func TestFormatLine_ExplicitTraceIDWins(t *testing.T) {
	got := formatLine(ERROR, "profiles", "from-ctx", Fields{"trace_id": "explicit"}, "x.go:1", "boom")
	want := "[ERROR] [profiles] [trace_id=explicit] x.go:1 boom"
	if got != want {
		t.Errorf("formatLine() = %q, want %q", got, want)
	}
}

func TestFormatLine_NoServiceNoFields(t *testing.T) {
	got := formatLine(INFO, "", "", nil, "x.go:1", "ready")
	if got != "[INFO] x.go:1 ready" {
		t.Errorf("unexpected line %q", got)
	}
}
