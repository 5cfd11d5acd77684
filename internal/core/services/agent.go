// Package services contains the core orchestration logic.
package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/flywheel-labs/paperscout/internal/core/domain"
	"github.com/flywheel-labs/paperscout/internal/core/ports/driven"
	"github.com/flywheel-labs/paperscout/internal/core/ports/driving"
	"github.com/flywheel-labs/paperscout/internal/logger"
)

// Ensure Agent implements the interface.
var _ driving.PaperAgent = (*Agent)(nil)

// Agent sequences the monthly pipeline: list, then per paper resolve,
// download, extract, analyse and write, with ledger-based de-duplication
// and a fixed politeness delay between papers.
type Agent struct {
	lister    driven.PaperLister
	resolver  driven.DetailResolver
	fetcher   driven.AssetFetcher
	extractor driven.TextExtractor
	analyser  driven.Analyser
	ledger    driven.Ledger
	records   driven.RecordStore

	// limiter spaces consecutive papers apart as a courtesy to the
	// remote site. Not adaptive, not exponential.
	limiter *rate.Limiter

	// progress receives per-paper status lines. Optional.
	progress func(format string, args ...any)
}

// NewAgent creates the orchestrator. delay is the fixed inter-paper wait.
func NewAgent(
	lister driven.PaperLister,
	resolver driven.DetailResolver,
	fetcher driven.AssetFetcher,
	extractor driven.TextExtractor,
	analyser driven.Analyser,
	ledger driven.Ledger,
	records driven.RecordStore,
	delay time.Duration,
) *Agent {
	var limiter *rate.Limiter
	if delay > 0 {
		limiter = rate.NewLimiter(rate.Every(delay), 1)
		// Drain the initial token so the very first Wait already spaces.
		limiter.Allow()
	}
	return &Agent{
		lister:    lister,
		resolver:  resolver,
		fetcher:   fetcher,
		extractor: extractor,
		analyser:  analyser,
		ledger:    ledger,
		records:   records,
		limiter:   limiter,
	}
}

// SetProgress installs a per-paper progress callback (the CLI's printer).
func (a *Agent) SetProgress(fn func(format string, args ...any)) {
	a.progress = fn
}

func (a *Agent) printf(format string, args ...any) {
	if a.progress != nil {
		a.progress(format, args...)
	}
}

// ListMonth fetches the listing only; no downloads, no ledger writes.
func (a *Agent) ListMonth(ctx context.Context, month domain.Month, limit int) ([]domain.Paper, error) {
	return a.lister.List(ctx, month, limit)
}

// RebuildIndex regenerates the aggregate index document.
func (a *Agent) RebuildIndex() error {
	return a.records.RebuildIndex()
}

// ProcessMonth runs the pipeline for one month.
func (a *Agent) ProcessMonth(ctx context.Context, month domain.Month, opts driving.ProcessOptions) (driving.RunSummary, error) {
	var summary driving.RunSummary

	papers, err := a.lister.List(ctx, month, opts.Limit)
	if err != nil {
		return summary, fmt.Errorf("list papers for %s: %w", month, err)
	}
	summary.Found = len(papers)

	if len(papers) == 0 {
		// Zero matches is an empty-but-successful run: the page may have
		// changed structure or may need script execution.
		logger.Warn("no papers found for %s; the page structure may have changed", month)
		return summary, nil
	}

	for i, paper := range papers {
		a.printf("[%d/%d] Processing: %s", i+1, len(papers), truncate(paper.Title, 60))

		switch {
		case !opts.Force && a.ledger.IsComplete(paper.ID, month):
			a.printf("  already processed, skipping")
			summary.Skipped++
		default:
			if err := a.processPaper(ctx, month, paper); err != nil {
				if ctx.Err() != nil {
					return summary, ctx.Err()
				}
				a.printf("  failed: %v", err)
				if lerr := a.ledger.RecordFailure(paper.ID, month, err.Error()); lerr != nil {
					logger.Errorf("record failure for %s: %v", paper.ID, lerr)
				}
				summary.Failed++
			} else {
				a.printf("  complete")
				summary.Processed++
			}
		}

		// Politeness spacing after every paper, regardless of outcome.
		if a.limiter != nil && i < len(papers)-1 {
			if err := a.limiter.Wait(ctx); err != nil {
				return summary, err
			}
		}
	}

	if err := a.records.RebuildIndex(); err != nil {
		return summary, fmt.Errorf("rebuild index: %w", err)
	}

	return summary, nil
}

// processPaper runs one paper through resolve, download, extract, analyse
// and write. Extraction and analysis degrade instead of failing, so the
// only failure points are detail resolution, download and the final
// filesystem writes.
func (a *Agent) processPaper(ctx context.Context, month domain.Month, paper domain.Paper) error {
	logger.Debug("resolving details for %s", paper.URL)
	detail := a.resolver.Resolve(ctx, paper.URL)
	if detail.PDFURL == "" {
		return domain.ErrNoPDFURL
	}

	paths, err := a.records.Paths(month, paper)
	if err != nil {
		return fmt.Errorf("plan output paths: %w", err)
	}

	logger.Debug("downloading %s", detail.PDFURL)
	if err := a.fetcher.Fetch(ctx, detail.PDFURL, paths.PDF); err != nil {
		logger.Info("download error for %s: %v", paper.ID, err)
		return domain.ErrDownloadFailed
	}

	fullText := a.extractor.Extract(ctx, paths.PDF)

	analysis := a.analyser.Analyse(ctx, paper.Title, detail.Abstract, fullText)

	if err := a.records.WriteRecord(paths, paper, detail, analysis, fullText); err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	meta := domain.RecordMeta{
		Title:   paper.Title,
		PDFPath: paths.PDF,
		MDPath:  paths.Markdown,
		URL:     paper.URL,
	}
	if err := a.ledger.RecordSuccess(paper.ID, month, meta); err != nil {
		return fmt.Errorf("record success: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
