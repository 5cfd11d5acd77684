package domain

// Paper is one entry discovered on the monthly listing page.
// Papers are produced by the lister and read-only afterwards.
type Paper struct {
	// ID is the listing identifier, unique within a month (e.g. "2511.00001").
	ID string

	// Title is the human-readable paper title.
	Title string

	// URL is the paper's page on the listing site.
	URL string
}

// PaperDetail holds the auxiliary links resolved from a paper's own page.
// Every field is optional; an empty PDFURL means the paper cannot be
// processed further.
type PaperDetail struct {
	// PDFURL is the direct link to the PDF, derived from the arXiv link.
	PDFURL string

	// ArxivURL is the arXiv page or PDF link as found on the page.
	ArxivURL string

	// GitHubURL is the companion code repository, if one is linked.
	GitHubURL string

	// Abstract is the paper abstract as scraped from the page.
	Abstract string
}
