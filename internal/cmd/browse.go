package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"prospekt/internal/clipboard"
	"prospekt/internal/engine"
	"prospekt/internal/source"
	"prospekt/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive catalog browser",
	Long: `Browse opens the offers table for the most recent catalog (preferring
today's snapshot when the manifest carries it). Inside the browser, / starts a
live search, c opens the category panel, s switches catalogs, i toggles the
image column, and e/p copy the visible offers to the clipboard.`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, log, src, err := setup(true)
	if err != nil {
		return err
	}
	defer log.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// File sources can report data directory changes; other kinds browse a
	// fixed manifest until refreshed manually.
	var changes <-chan struct{}
	if fs, ok := src.(*source.FileSource); ok && cfg.Source.Watch {
		changes, err = fs.Watch(ctx)
		if err != nil {
			log.Warn("manifest watch unavailable", "error", err)
			changes = nil
		}
	}

	model := tui.NewModel(tui.Params{
		Config:  cfg,
		Logger:  log,
		Engine:  engine.New(cfg, log),
		Source:  src,
		Clip:    clipboard.Default(),
		Changes: changes,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
