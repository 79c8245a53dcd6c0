package clipboard

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"prospekt/internal/errors"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("tty gone")
}

func TestCopyEmitsOSC52(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	if err := w.Copy("visible offers"); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "\x1b]52;") {
		t.Errorf("output does not start an OSC 52 sequence: %q", out)
	}
	encoded := base64.StdEncoding.EncodeToString([]byte("visible offers"))
	if !strings.Contains(out, encoded) {
		t.Errorf("output does not carry the base64 payload %q: %q", encoded, out)
	}
}

func TestCopyFailureIsClipboardError(t *testing.T) {
	w := New(failingWriter{})

	err := w.Copy("anything")
	if err == nil {
		t.Fatal("Copy() should fail when the terminal write fails")
	}
	if !errors.IsClipboard(err) {
		t.Errorf("error should be a ClipboardError, got %v", err)
	}
	if errors.IsLoadFailure(err) {
		t.Error("clipboard failures must not classify as load failures")
	}
}

func TestCopyNilWriter(t *testing.T) {
	w := New(nil)

	err := w.Copy("anything")
	if !errors.IsClipboard(err) {
		t.Fatalf("expected a ClipboardError, got %v", err)
	}
	if !errors.Is(err, errors.ErrClipboardUnavailable) {
		t.Errorf("should wrap ErrClipboardUnavailable, got %v", err)
	}
}
