// Package errors provides centralized error definitions and error handling
// utilities for the prospekt codebase. It defines the failure taxonomy of the
// catalog view engine, error constructors with context wrapping, and
// classification helpers.
//
// The engine distinguishes three failure classes:
//   - TransportError: a manifest or snapshot fetch failed
//   - MalformedCatalogError: a fetched payload is not a usable catalog
//   - ClipboardError: writing an export to the clipboard failed
//
// Transport and malformed-catalog errors terminate a catalog load and return
// the engine to its "no catalog loaded" state; clipboard errors are local to
// the export action and leave all view state untouched. No error in this
// package is fatal to the process.
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Sentinel errors for common failure conditions.
var (
	// ErrManifestUnavailable indicates the snapshot manifest could not be read.
	ErrManifestUnavailable = New("manifest unavailable")
	// ErrSnapshotNotFound indicates a snapshot id resolved to no payload.
	ErrSnapshotNotFound = New("snapshot not found")
	// ErrNoOffers indicates a payload without a usable offers sequence.
	ErrNoOffers = New("payload has no offers sequence")
	// ErrNoCatalog indicates an operation that requires a loaded catalog.
	ErrNoCatalog = New("no catalog loaded")
	// ErrClipboardUnavailable indicates no clipboard sink could be reached.
	ErrClipboardUnavailable = New("clipboard unavailable")
)

// TransportError represents a failed manifest or snapshot fetch.
type TransportError struct {
	// Op is the operation that failed: "manifest" or "snapshot".
	Op string
	// Target identifies what was being fetched (snapshot id, URL, or path).
	Target string
	// Err is the underlying cause.
	Err error
}

// NewTransportError creates a TransportError for the given operation.
func NewTransportError(op, target string, err error) *TransportError {
	return &TransportError{Op: op, Target: target, Err: err}
}

func (e *TransportError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s fetch failed for %q: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s fetch failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedCatalogError represents a snapshot payload that was fetched
// successfully but cannot be loaded as a catalog.
type MalformedCatalogError struct {
	// Reason describes what is wrong with the payload.
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

// NewMalformedCatalogError creates a MalformedCatalogError with a reason.
func NewMalformedCatalogError(reason string, err error) *MalformedCatalogError {
	return &MalformedCatalogError{Reason: reason, Err: err}
}

func (e *MalformedCatalogError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed catalog: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed catalog: %s", e.Reason)
}

func (e *MalformedCatalogError) Unwrap() error { return e.Err }

// ClipboardError represents a failed clipboard write during export.
type ClipboardError struct {
	// Err is the underlying cause.
	Err error
}

// NewClipboardError creates a ClipboardError wrapping the cause.
func NewClipboardError(err error) *ClipboardError {
	return &ClipboardError{Err: err}
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("clipboard write failed: %v", e.Err)
}

func (e *ClipboardError) Unwrap() error { return e.Err }

// IsTransport reports whether err is or wraps a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return As(err, &te)
}

// IsMalformedCatalog reports whether err is or wraps a MalformedCatalogError.
func IsMalformedCatalog(err error) bool {
	var me *MalformedCatalogError
	return As(err, &me)
}

// IsClipboard reports whether err is or wraps a ClipboardError.
func IsClipboard(err error) bool {
	var ce *ClipboardError
	return As(err, &ce)
}

// IsLoadFailure reports whether err should discard the current catalog and
// put the engine into its error state. Clipboard errors never do.
func IsLoadFailure(err error) bool {
	return IsTransport(err) || IsMalformedCatalog(err)
}

// UserMessage returns a short message suitable for the summary area.
// Internal detail is kept in logs; the user sees the failure class and
// enough context to retry.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case IsTransport(err):
		var te *TransportError
		As(err, &te)
		if te.Op == "manifest" {
			return "could not load the catalog list"
		}
		return fmt.Sprintf("could not load catalog %q", te.Target)
	case IsMalformedCatalog(err):
		return "catalog data is malformed"
	case IsClipboard(err):
		return "copy to clipboard failed"
	default:
		return err.Error()
	}
}
