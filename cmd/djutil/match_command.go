package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"djutil/internal/matchfiles"
	"djutil/internal/records"
	"djutil/internal/scanner"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var (
		csvPath    string
		scanDir    string
		outputPath string
		reportPath string
		similarity float64
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match catalog records against audio files on disk",
		Long: `Match scores every input record against the audio files under --scan-dir
and writes the matched records, confidence descending, to --output.
Unmatched records are omitted from the CSV but listed in the optional
--report markdown file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			threshold := cfg.Matching.FileThreshold
			if cmd.Flags().Changed("similarity") {
				threshold = similarity
			}

			loader := records.Loader{}
			recs, err := loader.Load(csvPath)
			if err != nil {
				return err
			}

			candidates, err := scanner.Scan(scanDir)
			if err != nil {
				return err
			}

			engine, err := matchfiles.New(threshold, logger)
			if err != nil {
				return err
			}
			outcome := engine.Match(recs, candidates)

			written, err := records.ExportMatches(outputPath, outcome.Records)
			if err != nil {
				return err
			}

			if reportPath != "" {
				info := matchfiles.ReportInfo{
					InputPath:   csvPath,
					ScanDir:     scanDir,
					Threshold:   threshold,
					FilesFound:  len(candidates),
					GeneratedAt: time.Now(),
				}
				if err := matchfiles.WriteReport(reportPath, info, outcome); err != nil {
					return err
				}
			}

			summary := outcome.Summary()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Metric", "Value"},
				[][]string{
					{"Records", fmt.Sprintf("%d", summary.Total)},
					{"Files scanned", fmt.Sprintf("%d", len(candidates))},
					{"Matched", fmt.Sprintf("%d", summary.Matched)},
					{"Unmatched", fmt.Sprintf("%d", summary.Unmatched)},
					{"Duplicates resolved", fmt.Sprintf("%d", summary.DuplicatesResolved)},
					{"Match rate", fmt.Sprintf("%.1f%%", summary.MatchRate())},
				},
				[]columnAlignment{alignLeft, alignRight},
			))
			fmt.Fprintf(out, "Wrote %d matched records to %s\n", written, outputPath)
			if reportPath != "" {
				fmt.Fprintf(out, "Wrote report to %s\n", reportPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Input records CSV")
	cmd.Flags().StringVar(&scanDir, "scan-dir", "", "Directory tree to scan for audio files")
	cmd.Flags().StringVar(&outputPath, "output", "", "Destination CSV for matched records")
	cmd.Flags().StringVar(&reportPath, "report", "", "Optional markdown report path")
	cmd.Flags().Float64Var(&similarity, "similarity", 0.6, "Minimum combined similarity for a match")
	_ = cmd.MarkFlagRequired("csv")
	_ = cmd.MarkFlagRequired("scan-dir")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
