package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"djutil/internal/catalog"
	"djutil/internal/convert"
	"djutil/internal/linker"
	"djutil/internal/records"
)

func newLinkCommand(ctx *commandContext) *cobra.Command {
	var (
		csvPath       string
		fuzzy         bool
		threshold     float64
		apply         bool
		strict        bool
		limit         int
		allowMismatch bool
		force         bool
		convertTo     string
		convertFrom   []string
		conversionDir string
		skipReanalyze bool
		resumeFrom    string
		resultsPath   string
		assumeYes     bool
	)

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Point streaming-only catalog entries at local files",
		Long: `Link walks the input records in order and, for each one, resolves its
catalog entry (by id, or by fuzzy artist/title match with --fuzzy),
validates it, optionally converts the audio file, and updates the entry
to reference the local file. Dry-run is the default; pass --apply to
mutate the catalog.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("match-threshold") {
				threshold = cfg.Matching.CatalogThreshold
			}
			if conversionDir == "" {
				conversionDir = cfg.Paths.ConversionDir
			}

			loader := records.Loader{RequireID: !fuzzy, RequirePath: true}
			recs, err := loader.Load(csvPath)
			if err != nil {
				return err
			}

			var resume map[int64]struct{}
			if resumeFrom != "" {
				resume, err = linker.LoadResumeSet(resumeFrom)
				if err != nil {
					return err
				}
			}

			if apply {
				if err := confirmExclusiveAccess(cmd, assumeYes); err != nil {
					return err
				}
			}

			store, err := catalog.Open(cfg.Paths.CatalogPath, cfg.Paths.BackupDir)
			if err != nil {
				return err
			}
			defer store.Close()

			var converter linker.Converter
			if convertTo != "" {
				c, err := convert.New(cfg, logger)
				if err != nil {
					return err
				}
				converter = c
			}

			orch, err := linker.New(store, converter, linker.Options{
				Fuzzy:           fuzzy,
				Threshold:       threshold,
				AmbiguityWindow: cfg.Matching.AmbiguityWindow,
				DryRun:          !apply,
				Strict:          strict,
				Limit:           limit,
				AllowMismatch:   allowMismatch,
				Force:           force,
				ConvertTo:       convertTo,
				ConvertFrom:     convertFrom,
				ConversionDir:   conversionDir,
				SkipReanalyze:   skipReanalyze,
				Resume:          resume,
			}, logger)
			if err != nil {
				return err
			}

			summary, err := orch.Run(cmd.Context(), recs)
			if err != nil {
				return err
			}

			if resultsPath != "" {
				if _, err := linker.WriteResults(resultsPath, summary.Results); err != nil {
					return err
				}
			}

			printLinkSummary(cmd, summary, resultsPath)

			if summary.Failed() {
				return fmt.Errorf("link run failed: %d of %d records errored", summary.Errors, summary.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Input records CSV")
	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "Match by artist/title similarity instead of by id")
	cmd.Flags().Float64Var(&threshold, "match-threshold", 0.75, "Minimum similarity for a fuzzy catalog match")
	cmd.Flags().BoolVar(&apply, "apply", false, "Apply catalog mutations (default is dry-run)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Halt the run at the first record error")
	cmd.Flags().IntVar(&limit, "limit", 0, "Process at most N records (0 = all)")
	cmd.Flags().BoolVar(&allowMismatch, "allow-mismatch", false, "Skip the exact artist/title check in id mode")
	cmd.Flags().BoolVar(&force, "force", false, "Relink entries that are already local")
	cmd.Flags().StringVar(&convertTo, "convert-to", "", "Convert files to this format before linking")
	cmd.Flags().StringSliceVar(&convertFrom, "convert-from", nil, "Only convert files currently in these formats")
	cmd.Flags().StringVar(&conversionDir, "conversion-dir", "", "Directory for converted files (default: beside the source)")
	cmd.Flags().BoolVar(&skipReanalyze, "skip-reanalyze", false, "Leave cached analysis metadata in place after updates")
	cmd.Flags().StringVar(&resumeFrom, "resume-from", "", "Results CSV from a prior run; already-linked entries are skipped")
	cmd.Flags().StringVar(&resultsPath, "results", "", "Write per-record results to this CSV")
	cmd.Flags().BoolVar(&assumeYes, "yes", false, "Skip the exclusive-access confirmation prompt")
	_ = cmd.MarkFlagRequired("csv")
	return cmd
}

func printLinkSummary(cmd *cobra.Command, summary *linker.Summary, resultsPath string) {
	out := cmd.OutOrStdout()

	if len(summary.Results) > 0 {
		rows := make([][]string, 0, len(summary.Results))
		for _, result := range summary.Results {
			confidence := ""
			if result.Confidence > 0 {
				confidence = fmt.Sprintf("%.3f", result.Confidence)
				if result.Ambiguous {
					confidence += " (ambiguous)"
				}
			}
			size := ""
			if result.Record.FileSize > 0 {
				size = humanize.Bytes(uint64(result.Record.FileSize))
			}
			rows = append(rows, []string{
				result.Record.DisplayName(),
				string(result.Action),
				confidence,
				size,
				result.Reason,
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Record", "Action", "Confidence", "Size", "Reason"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
		))
	}

	mode := "apply"
	if summary.DryRun {
		mode = "dry-run"
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Metric", "Value"},
		[][]string{
			{"Mode", mode},
			{"Records", fmt.Sprintf("%d", summary.Total)},
			{"Updated", fmt.Sprintf("%d", summary.Updated)},
			{"Converted", fmt.Sprintf("%d", summary.Converted)},
			{"Skipped", fmt.Sprintf("%d", summary.Skipped)},
			{"Errors", fmt.Sprintf("%d", summary.Errors)},
			{"Reanalyzed", fmt.Sprintf("%d", summary.Reanalyzed)},
			{"Halted early", yesNo(summary.Halted)},
		},
		[]columnAlignment{alignLeft, alignRight},
	))
	if summary.BackupPath != "" {
		fmt.Fprintf(out, "Catalog backed up to %s\n", summary.BackupPath)
	}
	if resultsPath != "" {
		fmt.Fprintf(out, "Wrote results to %s\n", resultsPath)
	}
	if summary.DryRun {
		fmt.Fprintln(out, "Dry run: no changes were applied. Re-run with --apply to link.")
	}
}
