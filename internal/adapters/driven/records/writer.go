// Package records renders per-paper markdown records and the aggregate
// index document.
package records

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/flywheel-labs/paperscout/internal/core/domain"
	"github.com/flywheel-labs/paperscout/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.RecordStore = (*Store)(nil)

// maxRecordText caps how much extracted text a record embeds.
const maxRecordText = 50000

// Store writes records under one directory per month and maintains the
// index document next to the papers directory.
type Store struct {
	papersDir string
	indexFile string
	now       func() time.Time
}

// NewStore creates a record store rooted at papersDir.
func NewStore(papersDir, indexFile string) *Store {
	return &Store{
		papersDir: papersDir,
		indexFile: indexFile,
		now:       time.Now,
	}
}

// Paths derives the output locations for a paper from its sanitised title
// and creates the month directory.
func (s *Store) Paths(month domain.Month, paper domain.Paper) (driven.RecordPaths, error) {
	stem := SafeTitle(paper.Title)
	if stem == "" {
		stem = paper.ID
	}

	monthDir := filepath.Join(s.papersDir, month.String())
	if err := os.MkdirAll(monthDir, 0o755); err != nil {
		return driven.RecordPaths{}, fmt.Errorf("create month directory: %w", err)
	}

	return driven.RecordPaths{
		PDF:      filepath.Join(monthDir, stem+".pdf"),
		Markdown: filepath.Join(monthDir, stem+".md"),
	}, nil
}

// WriteRecord renders the markdown record, overwriting any existing file.
func (s *Store) WriteRecord(paths driven.RecordPaths, paper domain.Paper, detail domain.PaperDetail,
	analysis domain.Analysis, fullText string) error {

	if fullText == "" {
		fullText = "[Text extraction failed]"
	}
	if len(fullText) > maxRecordText {
		fullText = fullText[:maxRecordText]
	}
	summary := analysis.Summary
	if summary == "" {
		summary = "No summary available"
	}

	stem := strings.TrimSuffix(filepath.Base(paths.Markdown), ".md")

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", paper.Title)
	b.WriteString("## Metadata\n")
	fmt.Fprintf(&b, "- **HuggingFace URL**: %s\n", paper.URL)
	fmt.Fprintf(&b, "- **arXiv URL**: %s\n", orNA(detail.ArxivURL))
	fmt.Fprintf(&b, "- **PDF**: [%s.pdf](./%s.pdf)\n", stem, stem)
	fmt.Fprintf(&b, "- **GitHub**: %s\n", orNA(detail.GitHubURL))
	fmt.Fprintf(&b, "- **Downloaded**: %s\n\n", s.now().Format("2006-01-02"))
	b.WriteString("## Abstract\n")
	fmt.Fprintf(&b, "%s\n\n", orDefault(detail.Abstract, "No abstract available"))
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "%s\n\n", summary)
	if len(analysis.Relevance) > 0 {
		b.WriteString("## Relevance (keyword heuristic)\n")
		for _, cat := range domain.Categories() {
			if rel, ok := analysis.Relevance[cat]; ok {
				fmt.Fprintf(&b, "- **%s**: %s\n", cat, rel)
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("---\n\n")
	b.WriteString("## Full Paper Text\n\n")
	b.WriteString("<details>\n<summary>Click to expand full extracted text</summary>\n\n")
	fmt.Fprintf(&b, "%s\n\n", fullText)
	b.WriteString("</details>\n\n---\n\n*Generated by paperscout*\n")

	if err := os.WriteFile(paths.Markdown, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

func orNA(s string) string {
	return orDefault(s, "N/A")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
