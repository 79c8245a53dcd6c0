package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"prospekt/internal/config"
	"prospekt/internal/source"
)

// manifestMsg carries the result of a manifest fetch.
type manifestMsg struct {
	ids []string
	err error
}

// snapshotMsg carries the result of a snapshot fetch, stamped with the load
// generation issued by the engine. Stale generations are discarded on apply.
type snapshotMsg struct {
	gen     uint64
	id      string
	payload []byte
	err     error
}

// manifestChangedMsg signals that the data directory changed and the
// manifest should be re-read.
type manifestChangedMsg struct{}

// pingMsg carries the result of the source reachability probe.
type pingMsg struct {
	err error
}

// clipboardMsg carries the result of an export-to-clipboard action.
type clipboardMsg struct {
	format string
	count  int
	err    error
}

// fetchManifest returns a command that reads the snapshot manifest.
func fetchManifest(src source.Source, cfg *config.Config) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Source.Timeout())
		defer cancel()
		ids, err := src.Manifest(ctx)
		return manifestMsg{ids: ids, err: err}
	}
}

// fetchSnapshot returns a command that reads one snapshot payload.
func fetchSnapshot(src source.Source, cfg *config.Config, gen uint64, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Source.Timeout())
		defer cancel()
		payload, err := src.Snapshot(ctx, id)
		return snapshotMsg{gen: gen, id: id, payload: payload, err: err}
	}
}

// waitForChange returns a command that blocks on the watcher channel and
// re-arms after every notification. A closed channel ends the watch quietly.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return manifestChangedMsg{}
	}
}

// ping returns a command that probes the source for the header badge.
func ping(p source.Pinger, cfg *config.Config) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Source.Timeout())
		defer cancel()
		return pingMsg{err: p.Ping(ctx)}
	}
}
