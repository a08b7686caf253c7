package linker

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"djutil/internal/catalog"
	"djutil/internal/convert"
	"djutil/internal/logging"
	"djutil/internal/records"
	"djutil/internal/services"
)

// Catalog is the mutation boundary to the external catalog store.
type Catalog interface {
	AllStreamingEntries(ctx context.Context) ([]catalog.Entry, error)
	EntryByID(ctx context.Context, id int64) (*catalog.Entry, error)
	Backup(ctx context.Context) (string, error)
	UpdateToLocal(ctx context.Context, id int64, path string, size int64) error
	ClearAnalysis(ctx context.Context, id int64) error
}

// Converter is the conversion boundary. It is only consulted when a target
// format was requested.
type Converter interface {
	IsConversionNeeded(sourcePath, targetFormat string) bool
	Convert(ctx context.Context, source, targetFormat, outputDir string, preserveOriginal, overwrite bool) convert.Result
	ProbeFormat(ctx context.Context, path string) string
}

// Options control a single orchestrator run.
type Options struct {
	// Fuzzy matches records against catalog rows by similarity instead of by
	// the input's id column.
	Fuzzy           bool
	Threshold       float64
	AmbiguityWindow float64

	// DryRun computes and reports every action but performs no mutation.
	DryRun bool
	// Strict halts the run at the first record reaching an error.
	Strict bool
	// Limit caps the number of records processed; zero means all.
	Limit int

	// AllowMismatch disables the id-mode exact artist/title gate.
	AllowMismatch bool
	// Force links entries that are already local.
	Force bool

	// ConvertTo requests conversion into the named format before linking.
	ConvertTo string
	// ConvertFrom restricts conversion to sources in these formats.
	ConvertFrom []string
	// ConversionDir receives converted files; empty keeps them beside the
	// source.
	ConversionDir string

	// SkipReanalyze leaves the entry's cached analysis metadata in place
	// after an update.
	SkipReanalyze bool

	// Resume holds catalog ids already linked by a prior run; matching
	// records are skipped.
	Resume map[int64]struct{}
}

// Orchestrator sequences match, validation, conversion, catalog update, and
// re-analysis marking per record, strictly in input order.
type Orchestrator struct {
	catalog   Catalog
	converter Converter
	matcher   *Matcher
	opts      Options
	logger    *slog.Logger
}

// New validates the options and builds an Orchestrator. The converter may be
// nil when no conversion was requested.
func New(cat Catalog, converter Converter, opts Options, logger *slog.Logger) (*Orchestrator, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if cat == nil {
		return nil, services.Wrap(services.ErrConfiguration, "linker", "init", "catalog store is required", nil)
	}
	matcher, err := NewMatcher(opts.Threshold, opts.AmbiguityWindow)
	if err != nil {
		return nil, err
	}
	if opts.ConvertTo != "" {
		if !convert.IsSupported(opts.ConvertTo) {
			return nil, services.Wrap(services.ErrValidation, "linker", "init",
				fmt.Sprintf("unsupported conversion format %q", opts.ConvertTo), nil)
		}
		if converter == nil {
			return nil, services.Wrap(services.ErrConfiguration, "linker", "init",
				"conversion requested but no converter available", nil)
		}
	}
	return &Orchestrator{
		catalog:   cat,
		converter: converter,
		matcher:   matcher,
		opts:      opts,
		logger:    logger,
	}, nil
}

// Run processes the records one at a time and returns the collected summary.
// In apply mode a catalog backup is taken before the first record; a backup
// failure aborts the run under strict and is logged otherwise. Cancellation
// between records leaves already-applied mutations intact.
func (o *Orchestrator) Run(ctx context.Context, recs []records.Record) (*Summary, error) {
	summary := &Summary{DryRun: o.opts.DryRun}

	if o.opts.Limit > 0 && len(recs) > o.opts.Limit {
		recs = recs[:o.opts.Limit]
	}

	var entries []catalog.Entry
	if o.opts.Fuzzy {
		pool, err := o.catalog.AllStreamingEntries(ctx)
		if err != nil {
			return nil, services.Wrap(services.ErrExternalTool, "linker", "load-entries",
				"load streaming entries", err)
		}
		entries = pool
		o.logger.Info("loaded streaming entries", logging.Int("count", len(entries)))
	}

	if !o.opts.DryRun {
		backupPath, err := o.catalog.Backup(ctx)
		if err != nil {
			if o.opts.Strict {
				return nil, services.Wrap(services.ErrExternalTool, "linker", "backup",
					"catalog backup failed; aborting strict run", err)
			}
			o.logger.Warn("catalog backup failed, continuing without one", logging.Error(err))
		} else {
			summary.BackupPath = backupPath
			o.logger.Info("catalog backed up", logging.String("path", backupPath))
		}
	}

	for i := range recs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		result := o.processRecord(ctx, recs[i], entries)
		summary.add(result)
		o.logResult(result)
		if o.opts.Strict && result.Action == ActionError {
			summary.Halted = true
			o.logger.Warn("strict mode halting run",
				logging.String("record", result.Record.DisplayName()),
				logging.String("reason", result.Reason))
			break
		}
	}
	return summary, nil
}

func (o *Orchestrator) processRecord(ctx context.Context, rec records.Record, entries []catalog.Entry) Result {
	result := Result{Record: rec}

	entry, ok := o.resolveEntry(ctx, rec, entries, &result)
	if !ok {
		return result
	}
	result.CatalogID = entry.ID

	if _, done := o.opts.Resume[entry.ID]; done {
		return skipped(result, "already processed in a previous run")
	}

	if entry.IsLocal() && !o.opts.Force {
		return skipped(result, "already local")
	}
	if !o.opts.Fuzzy && !o.opts.AllowMismatch {
		// Fuzzy mode already performed an approximate comparison; id mode
		// demands exact equality against the stored strings.
		if entry.Artist != rec.Artist || entry.Title != rec.Title {
			return skipped(result, fmt.Sprintf("artist/title mismatch: catalog has %q", entry.DisplayName()))
		}
	}

	path := rec.NormalizedPath
	if path == "" {
		path = rec.SourcePath
	}
	info, err := os.Stat(path)
	if err != nil {
		return failedResult(result, fmt.Sprintf("file not found: %s", path))
	}
	size := info.Size()

	if o.opts.ConvertTo != "" {
		path, size = o.maybeConvert(ctx, path, size, &result)
	}

	action := ActionUpdated
	if result.Converted {
		action = ActionConverted
	}
	if o.opts.DryRun {
		result.Action = action
		result.Reason = "dry run"
		return result
	}

	if err := o.catalog.UpdateToLocal(ctx, entry.ID, path, size); err != nil {
		return failedResult(result, fmt.Sprintf("catalog update failed: %v", err))
	}
	result.Action = action

	if !o.opts.SkipReanalyze {
		if err := o.catalog.ClearAnalysis(ctx, entry.ID); err != nil {
			// Log-only: the update already happened and stands.
			o.logger.Warn("re-analysis marking failed",
				logging.Int64("catalog_id", entry.ID), logging.Error(err))
		} else {
			result.Reanalyzed = true
		}
	}
	return result
}

// resolveEntry maps a record to its catalog entry, by id or by fuzzy match.
// On failure it finalizes the result and returns ok=false.
func (o *Orchestrator) resolveEntry(ctx context.Context, rec records.Record, entries []catalog.Entry, result *Result) (catalog.Entry, bool) {
	if o.opts.Fuzzy {
		match := o.matcher.FindBestMatch(rec.Artist, rec.Title, entries)
		if match == nil {
			*result = skipped(*result, "no match found")
			return catalog.Entry{}, false
		}
		result.Confidence = match.Confidence
		result.Ambiguous = match.Ambiguous
		return match.Entry, true
	}

	if rec.ExternalID <= 0 {
		*result = failedResult(*result, "no id supplied")
		return catalog.Entry{}, false
	}
	entry, err := o.catalog.EntryByID(ctx, rec.ExternalID)
	if err != nil {
		*result = failedResult(*result, fmt.Sprintf("catalog lookup failed: %v", err))
		return catalog.Entry{}, false
	}
	if entry == nil {
		result.CatalogID = rec.ExternalID
		*result = failedResult(*result, fmt.Sprintf("catalog entry %d not found", rec.ExternalID))
		return catalog.Entry{}, false
	}
	return *entry, true
}

// maybeConvert runs the optional conversion step and returns the path and
// size the update should use. Conversion failure falls back to the original
// file and is never a basis for an error result.
func (o *Orchestrator) maybeConvert(ctx context.Context, path string, size int64, result *Result) (string, int64) {
	target := o.opts.ConvertTo
	if !o.converter.IsConversionNeeded(path, target) {
		return path, size
	}
	if len(o.opts.ConvertFrom) > 0 {
		source := o.converter.ProbeFormat(ctx, path)
		if !formatAllowed(source, o.opts.ConvertFrom) {
			o.logger.Debug("source format outside allow-list, skipping conversion",
				logging.String("path", path), logging.String("format", source))
			return path, size
		}
	}
	if o.opts.DryRun {
		result.Converted = true
		result.Format = convert.NormalizeFormat(target)
		return path, size
	}

	converted := o.converter.Convert(ctx, path, target, o.opts.ConversionDir, true, false)
	if !converted.Success {
		o.logger.Warn("conversion failed, using original file",
			logging.String("path", path), logging.Error(converted.Err))
		return path, size
	}
	info, err := os.Stat(converted.OutputPath)
	if err != nil {
		o.logger.Warn("converted file missing, using original file",
			logging.String("path", converted.OutputPath), logging.Error(err))
		return path, size
	}
	result.Converted = true
	result.Format = convert.NormalizeFormat(target)
	return converted.OutputPath, info.Size()
}

func (o *Orchestrator) logResult(result Result) {
	attrs := []logging.Attr{
		logging.String("record", result.Record.DisplayName()),
		logging.String("action", string(result.Action)),
	}
	if result.CatalogID > 0 {
		attrs = append(attrs, logging.Int64("catalog_id", result.CatalogID))
	}
	if result.Reason != "" {
		attrs = append(attrs, logging.String("reason", result.Reason))
	}
	if result.Confidence > 0 {
		attrs = append(attrs, logging.Float64("confidence", result.Confidence))
	}
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}
	if result.Action == ActionError {
		o.logger.Error("record failed", args...)
		return
	}
	o.logger.Info("record processed", args...)
}

func formatAllowed(format string, allowed []string) bool {
	format = convert.NormalizeFormat(format)
	for _, candidate := range allowed {
		if convert.NormalizeFormat(candidate) == format {
			return true
		}
	}
	return false
}

func skipped(result Result, reason string) Result {
	result.Action = ActionSkipped
	result.Reason = reason
	return result
}

func failedResult(result Result, reason string) Result {
	result.Action = ActionError
	result.Reason = reason
	return result
}
