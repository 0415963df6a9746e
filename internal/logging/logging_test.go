package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_EmptyPathIsNop(t *testing.T) {
	t.Parallel()

	l, err := New("", "debug")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Info("dropped")
}

func TestNew_WritesJSONLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "quickcomm.log")
	l, err := New(path, "debug")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Debug("state saved", zap.String("path", "x.json"))
	_ = l.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"msg":"state saved"`) || !strings.Contains(s, `"path":"x.json"`) {
		t.Fatalf("unexpected log output: %s", s)
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	if _, err := New(filepath.Join(t.TempDir(), "x.log"), "loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
