package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"djutil/internal/catalog"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var (
		outputPath string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export streaming catalog entries to CSV",
		Long: `Export writes every catalog entry still backed by a streaming provider to
--output, ordered by catalog id. The columns match what match and link
accept, so the file can feed either command directly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := catalog.Open(cfg.Paths.CatalogPath, cfg.Paths.BackupDir)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.AllStreamingEntries(cmd.Context())
			if err != nil {
				return err
			}
			total := len(entries)
			if limit > 0 && total > limit {
				entries = entries[:limit]
			}

			written, err := catalog.ExportStreaming(outputPath, entries)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Metric", "Value"},
				[][]string{
					{"Streaming entries", fmt.Sprintf("%d", total)},
					{"Exported", fmt.Sprintf("%d", written)},
				},
				[]columnAlignment{alignLeft, alignRight},
			))
			fmt.Fprintf(out, "Wrote %d streaming entries to %s\n", written, outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination CSV for streaming entries")
	cmd.Flags().IntVar(&limit, "limit", 0, "Cap the number of entries exported (0 = all)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
