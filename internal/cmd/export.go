package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"prospekt/internal/config"
	"prospekt/internal/engine"
	"prospekt/internal/source"
)

var (
	exportSearch  string
	exportFormat  string
	exportInclude []string
)

var exportCmd = &cobra.Command{
	Use:   "export [snapshot-id]",
	Short: "Print the visible offers of a catalog",
	Long: `Export loads a catalog snapshot headlessly, applies the same default
category exclusions and optional search term the browser would, and prints
the visible offers to stdout as JSON or as a prompt for a language model.

Without a snapshot id the newest catalog in the manifest is used, preferring
today's snapshot when present.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportSearch, "search", "", "free-text term applied before exporting")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "output format: json or prompt (default from config)")
	exportCmd.Flags().StringSliceVar(&exportInclude, "include-category", nil, "categories to re-include despite the default exclusions")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, log, src, err := setup(false)
	if err != nil {
		return err
	}
	defer log.Close()

	ctx := cmd.Context()

	id := ""
	if len(args) == 1 {
		id = args[0]
	} else {
		ids, err := src.Manifest(ctx)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return fmt.Errorf("the source has no catalogs")
		}
		id = ids[len(ids)-1]
		if today := source.DefaultSnapshotID(time.Now()); contains(ids, today) {
			id = today
		}
	}

	eng := engine.New(cfg, log)
	if err := eng.Select(ctx, src, id); err != nil {
		return err
	}

	for _, name := range exportInclude {
		if eng.Filter().IsExcluded(name) {
			eng.ToggleCategory(name)
		}
	}
	if exportSearch != "" {
		eng.SetSearchTerm(exportSearch)
	}

	format := exportFormat
	if format == "" {
		format = cfg.Export.Format
	}
	if format != "json" && format != "prompt" {
		return fmt.Errorf("unknown export format %q (valid: %v)", format, config.ValidExportFormats())
	}
	out, err := eng.Export(format, cfg.Export.Indent)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
