// Package source provides the external collaborators of the view engine:
// reading the snapshot manifest and fetching raw snapshot payloads. The
// engine never touches the network or the filesystem itself; it talks to a
// Source and treats every failure as a TransportError.
package source

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"prospekt/internal/config"
	"prospekt/internal/errors"
)

// Source reads the snapshot manifest and raw snapshot payloads.
// Implementations map every failure to a TransportError.
type Source interface {
	// Kind identifies the implementation ("file", "http") for logs.
	Kind() string
	// Manifest returns the ordered snapshot identifiers.
	Manifest(ctx context.Context) ([]string, error)
	// Snapshot returns the raw catalog payload for an identifier.
	Snapshot(ctx context.Context, id string) ([]byte, error)
}

// Pinger is the optional reachability probe some sources support. The UI
// shows the result as a badge; a failed probe never blocks loading.
type Pinger interface {
	Ping(ctx context.Context) error
}

// New builds the Source selected by the configuration.
func New(cfg *config.Config) (Source, error) {
	switch cfg.Source.Kind {
	case "file":
		return NewFileSource(cfg.Source.ResolveDataDir()), nil
	case "http":
		return NewHTTPSource(cfg.Source.BaseURL, cfg.Source.Timeout()), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}

// DefaultSnapshotID derives the snapshot identifier the publisher uses for a
// given day: "<year>/KW<iso-week>/<yyyy-mm-dd>.json". The browse command
// preselects it when the manifest contains it.
func DefaultSnapshotID(t time.Time) string {
	_, week := t.ISOWeek()
	return fmt.Sprintf("%d/KW%d/%s.json", t.Year(), week, t.Format("2006-01-02"))
}

// sortChronological orders snapshot ids oldest first. Ids embed unpadded
// ISO weeks ("2024/KW9/…"), so a plain lexical sort would place KW10 before
// KW9; the comparison key zero-pads every KW path element.
func sortChronological(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		return chronoKey(ids[i]) < chronoKey(ids[j])
	})
}

// chronoKey rewrites "KW<n>" path elements to "KW<0000n>" for comparison.
func chronoKey(id string) string {
	parts := strings.Split(id, "/")
	for i, part := range parts {
		rest, ok := strings.CutPrefix(part, "KW")
		if !ok {
			continue
		}
		if week, err := strconv.Atoi(rest); err == nil {
			parts[i] = fmt.Sprintf("KW%05d", week)
		}
	}
	return strings.Join(parts, "/")
}

// transportErr wraps err as a TransportError unless it already is one.
func transportErr(op, target string, err error) error {
	if errors.IsTransport(err) {
		return err
	}
	return errors.NewTransportError(op, target, err)
}
