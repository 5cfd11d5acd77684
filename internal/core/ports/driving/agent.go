// Package driving defines the interfaces through which the CLI drives the
// core services.
package driving

import (
	"context"

	"github.com/flywheel-labs/paperscout/internal/core/domain"
)

// ProcessOptions tune a monthly run.
type ProcessOptions struct {
	// Force reprocesses papers the ledger already marks complete.
	Force bool

	// Limit caps the number of papers taken from the listing. 0 means
	// no cap.
	Limit int
}

// RunSummary is the outcome of one monthly run.
type RunSummary struct {
	Found     int
	Processed int
	Skipped   int
	Failed    int
}

// PaperAgent runs the monthly ingestion pipeline.
type PaperAgent interface {
	// ProcessMonth runs the full pipeline for one month and rebuilds the
	// index afterwards. A single paper's failure never aborts the rest of
	// the month; ctx cancellation does.
	ProcessMonth(ctx context.Context, month domain.Month, opts ProcessOptions) (RunSummary, error)

	// ListMonth fetches the listing only, with no downloads and no ledger
	// writes. Used by test mode.
	ListMonth(ctx context.Context, month domain.Month, limit int) ([]domain.Paper, error)

	// RebuildIndex regenerates the aggregate index document.
	RebuildIndex() error
}
