package driven

import (
	"context"

	"github.com/flywheel-labs/paperscout/internal/core/domain"
)

// AssetFetcher downloads a binary asset to a local path.
type AssetFetcher interface {
	// Fetch streams the body at url to dest, creating parent directories
	// as needed. Any network, status or filesystem error is returned;
	// nothing is retried.
	Fetch(ctx context.Context, url, dest string) error
}

// TextExtractor converts a downloaded PDF into plain text.
//
// Extraction never fails the pipeline: when the underlying capability is
// missing or decoding errors out, a fixed sentinel string is returned in
// place of the text.
type TextExtractor interface {
	Extract(ctx context.Context, pdfPath string) string
}

// Analyser produces the summary and relevance rating for a paper.
//
// Analyse never fails: the AI-backed implementation falls back to the
// keyword method on any terminal error.
type Analyser interface {
	Analyse(ctx context.Context, title, abstract, fullText string) domain.Analysis
}
