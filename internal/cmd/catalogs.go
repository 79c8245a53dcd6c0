package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"prospekt/internal/source"
)

var catalogsCmd = &cobra.Command{
	Use:   "catalogs",
	Short: "List the available catalog snapshots",
	Long: `Catalogs prints the snapshot manifest of the configured source, one id
per line, oldest first. The id the browser would preselect today is marked.`,
	RunE: runCatalogs,
}

func init() {
	rootCmd.AddCommand(catalogsCmd)
}

func runCatalogs(cmd *cobra.Command, args []string) error {
	_, log, src, err := setup(false)
	if err != nil {
		return err
	}
	defer log.Close()

	ids, err := src.Manifest(cmd.Context())
	if err != nil {
		return err
	}

	if p, ok := src.(source.Pinger); ok {
		if err := p.Ping(cmd.Context()); err != nil {
			log.Warn("source probe failed", "error", err)
		}
	}

	today := source.DefaultSnapshotID(time.Now())
	for _, id := range ids {
		if id == today {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t(today)\n", id)
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	if len(ids) == 0 {
		log.Info("manifest is empty")
	}
	return nil
}
