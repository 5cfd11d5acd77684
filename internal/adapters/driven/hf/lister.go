// Package hf scrapes the HuggingFace papers listing.
//
// Everything in here is best-effort pattern matching against markup we do
// not control and that changes without notice. The heuristics live behind
// the driven.PaperLister and driven.DetailResolver ports so they can be
// swapped without touching the orchestration.
package hf

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/flywheel-labs/paperscout/internal/core/domain"
	"github.com/flywheel-labs/paperscout/internal/core/ports/driven"
	"github.com/flywheel-labs/paperscout/internal/logger"
)

// Ensure Lister implements the interface.
var _ driven.PaperLister = (*Lister)(nil)

// paperHref matches hrefs of paper links on the listing page, e.g.
// "/papers/2511.00001".
var paperHref = regexp.MustCompile(`/papers/\d+\.\d+`)

// minTitleLen discards implausibly short titles (icon links, badges).
const minTitleLen = 10

// Lister scrapes the monthly listing page for paper links.
type Lister struct {
	fetcher driven.PageFetcher
	baseURL string
	origin  string
}

// NewLister creates a lister for the papers listing at baseURL.
func NewLister(fetcher driven.PageFetcher, baseURL string) *Lister {
	return &Lister{
		fetcher: fetcher,
		baseURL: baseURL,
		origin:  originOf(baseURL),
	}
}

// originOf reduces a URL to its scheme://host origin, used to absolutise
// relative paper links.
func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// List fetches the month's listing page once and scans it for paper links.
func (l *Lister) List(ctx context.Context, month domain.Month, limit int) ([]domain.Paper, error) {
	pageURL := fmt.Sprintf("%s?date=%s", l.baseURL, month)
	logger.Info("fetching listing: %s", pageURL)

	body, err := l.fetcher.FetchPage(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}

	var papers []domain.Paper
	seen := make(map[string]bool)

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if !paperHref.MatchString(href) {
			return true
		}

		paperURL := href
		if !strings.HasPrefix(paperURL, "http") {
			paperURL = l.origin + paperURL
		}

		id := paperIDFromURL(paperURL)
		if id == "" || seen[id] {
			return true
		}
		seen[id] = true

		title := extractTitle(sel)
		if len([]rune(title)) < minTitleLen {
			return true
		}

		papers = append(papers, domain.Paper{
			ID:    id,
			Title: title,
			URL:   paperURL,
		})
		return limit <= 0 || len(papers) < limit
	})

	logger.Info("found %d papers for %s", len(papers), month)
	return papers, nil
}

// paperIDFromURL extracts the paper id from a paper URL: the path segment
// after "/papers/", with any query or fragment stripped.
func paperIDFromURL(paperURL string) string {
	_, after, ok := strings.Cut(paperURL, "/papers/")
	if !ok {
		return ""
	}
	id := after
	if i := strings.IndexAny(id, "?#"); i >= 0 {
		id = id[:i]
	}
	return id
}

// extractTitle takes the link's own text, falling back to the first
// heading under the link's parent container.
func extractTitle(link *goquery.Selection) string {
	title := strings.TrimSpace(link.Text())
	if title != "" {
		return title
	}
	return strings.TrimSpace(link.Parent().Find("h1, h2, h3, h4").First().Text())
}
