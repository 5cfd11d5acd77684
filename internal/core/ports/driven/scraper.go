package driven

import (
	"context"

	"github.com/flywheel-labs/paperscout/internal/core/domain"
)

// PaperLister discovers the papers listed for a month.
type PaperLister interface {
	// List returns the papers for a month in the order they appear on the
	// listing page, de-duplicated by id. limit <= 0 means no cap.
	// Zero matches is an empty slice with a nil error, not a failure:
	// the page structure may have changed or may require script execution.
	List(ctx context.Context, month domain.Month, limit int) ([]domain.Paper, error)
}

// DetailResolver fetches a paper's own page and extracts auxiliary links.
type DetailResolver interface {
	// Resolve never fails: any error during resolution collapses to a
	// zero-value PaperDetail. Callers must treat an empty PDFURL as
	// cannot-proceed for that paper.
	Resolve(ctx context.Context, paperURL string) domain.PaperDetail
}

// PageFetcher retrieves an HTML page body.
// There are two implementations: a plain HTTP client and a headless
// browser for pages that render their content with scripts.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) ([]byte, error)
}
