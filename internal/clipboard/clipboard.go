// Package clipboard places export payloads on the system clipboard using the
// OSC 52 escape sequence, which works from the terminal the TUI already owns
// (including over SSH). A failed write is reported as a ClipboardError and
// never touches view state.
package clipboard

import (
	"io"
	"os"

	"github.com/aymanbagabas/go-osc52/v2"

	"prospekt/internal/errors"
)

// Writer copies strings to the clipboard of the terminal attached to out.
type Writer struct {
	out io.Writer
}

// New creates a Writer emitting to the given terminal stream.
// Use Default for the common case.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Default writes to stderr, which stays attached to the terminal while
// bubbletea owns stdout.
func Default() *Writer {
	return New(os.Stderr)
}

// Copy places text on the clipboard. Failures are wrapped as
// ClipboardError; the caller surfaces them and may simply retry.
func (w *Writer) Copy(text string) error {
	if w.out == nil {
		return errors.NewClipboardError(errors.ErrClipboardUnavailable)
	}
	if _, err := osc52.New(text).WriteTo(w.out); err != nil {
		return errors.NewClipboardError(err)
	}
	return nil
}
