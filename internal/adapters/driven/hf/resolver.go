package hf

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/flywheel-labs/paperscout/internal/core/domain"
	"github.com/flywheel-labs/paperscout/internal/core/ports/driven"
	"github.com/flywheel-labs/paperscout/internal/logger"
)

// Ensure Resolver implements the interface.
var _ driven.DetailResolver = (*Resolver)(nil)

var (
	arxivHref    = regexp.MustCompile(`arxiv\.org/(pdf|abs)`)
	githubHref   = regexp.MustCompile(`github\.com`)
	abstractAttr = regexp.MustCompile(`abstract`)
)

// Resolver scrapes a paper's own page for the arXiv PDF link, a companion
// repository link and the abstract.
type Resolver struct {
	fetcher driven.PageFetcher
}

// NewResolver creates a detail resolver.
func NewResolver(fetcher driven.PageFetcher) *Resolver {
	return &Resolver{fetcher: fetcher}
}

// Resolve fetches paperURL and applies independent pattern searches.
// Any failure collapses to a zero-value PaperDetail; an empty PDFURL
// tells the caller the paper cannot proceed.
func (r *Resolver) Resolve(ctx context.Context, paperURL string) domain.PaperDetail {
	body, err := r.fetcher.FetchPage(ctx, paperURL)
	if err != nil {
		logger.Warn("fetch paper page %s: %v", paperURL, err)
		return domain.PaperDetail{}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		logger.Warn("parse paper page %s: %v", paperURL, err)
		return domain.PaperDetail{}
	}

	var detail domain.PaperDetail

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if arxivHref.MatchString(href) {
			detail.ArxivURL = href
			detail.PDFURL = PDFURLFromArxiv(href)
			return false
		}
		return true
	})

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if githubHref.MatchString(href) {
			detail.GitHubURL = href
			return false
		}
		return true
	})

	doc.Find("div[class], p[class]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		if abstractAttr.MatchString(class) {
			detail.Abstract = strings.TrimSpace(sel.Text())
			return false
		}
		return true
	})

	return detail
}

// PDFURLFromArxiv derives the direct PDF link from an arXiv URL. Abstract
// form links ("/abs/") are rewritten to the PDF form with a ".pdf" suffix;
// PDF form links pass through unchanged.
func PDFURLFromArxiv(arxivURL string) string {
	if strings.Contains(arxivURL, "/abs/") {
		return strings.Replace(arxivURL, "/abs/", "/pdf/", 1) + ".pdf"
	}
	return arxivURL
}
