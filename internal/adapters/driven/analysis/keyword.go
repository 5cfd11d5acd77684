// Package analysis produces paper summaries and relevance ratings.
//
// Two variants exist, selected once at construction: an AI analyser
// backed by the Anthropic API, used when a credential is configured, and
// a keyword analyser that scores naive keyword overlap. The AI analyser
// degrades to the keyword one on terminal errors, so Analyse never fails.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/flywheel-labs/paperscout/internal/core/domain"
	"github.com/flywheel-labs/paperscout/internal/core/ports/driven"
)

// FallbackNotice is embedded in every fallback summary so records state
// explicitly that the analysis is degraded, not AI generated.
const FallbackNotice = "[Note: AI analysis unavailable. Set ANTHROPIC_API_KEY for AI-generated summaries]"

// mediumThreshold buckets a keyword overlap score: strictly more matches
// than this rates Medium, anything else Low.
const mediumThreshold = 2

// Ensure Keyword implements the interface.
var _ driven.Analyser = (*Keyword)(nil)

// Keyword rates papers by keyword overlap against title and abstract.
//
// The same keyword list applies to every category, so all categories
// currently receive the same rating. Kept as-is deliberately; see the
// project design notes before giving categories distinct lists.
type Keyword struct {
	keywords []string
}

// NewKeyword creates the fallback analyser.
func NewKeyword(keywords []string) *Keyword {
	return &Keyword{keywords: keywords}
}

// Analyse computes per-category relevance buckets and a templated summary
// that echoes the abstract with an unavailability notice.
func (k *Keyword) Analyse(_ context.Context, title, abstract, _ string) domain.Analysis {
	if title == "" {
		title = "Untitled"
	}
	if abstract == "" {
		abstract = "No abstract available"
	}

	text := strings.ToLower(title + " " + abstract)

	score := 0
	for _, kw := range k.keywords {
		if strings.Contains(text, kw) {
			score++
		}
	}

	bucket := domain.RelevanceLow
	if score > mediumThreshold {
		bucket = domain.RelevanceMedium
	}

	relevance := make(map[domain.Category]domain.Relevance, len(domain.Categories()))
	for _, cat := range domain.Categories() {
		relevance[cat] = bucket
	}

	return domain.Analysis{
		Summary:     fmt.Sprintf("# Summary\n\n%s\n\n%s", abstract, FallbackNotice),
		Relevance:   relevance,
		AIGenerated: false,
	}
}
