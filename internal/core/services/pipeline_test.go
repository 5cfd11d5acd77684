package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flywheel-labs/paperscout/internal/adapters/driven/analysis"
	"github.com/flywheel-labs/paperscout/internal/adapters/driven/pdf"
	"github.com/flywheel-labs/paperscout/internal/adapters/driven/records"
	"github.com/flywheel-labs/paperscout/internal/adapters/driven/storage/file"
	"github.com/flywheel-labs/paperscout/internal/core/domain"
	"github.com/flywheel-labs/paperscout/internal/core/ports/driving"
)

// fileWritingFetcher stands in for the HTTP downloader: it writes a stub
// PDF to the destination path instead of going to the network.
type fileWritingFetcher struct{}

func (fileWritingFetcher) Fetch(_ context.Context, _ string, dest string) error {
	return os.WriteFile(dest, []byte("%PDF-1.4 stub"), 0o644)
}

// TestPipeline_DegradedEndToEnd runs one paper through the real record
// store and ledger with pdftotext missing and no API key configured. The
// run must still complete, producing a record that carries the degraded
// markers, and the ledger must mark the paper done.
func TestPipeline_DegradedEndToEnd(t *testing.T) {
	dir := t.TempDir()
	papersDir := filepath.Join(dir, "papers")
	indexFile := filepath.Join(dir, "papers_index.md")

	ledger, err := file.NewLedger(filepath.Join(dir, "papers_tracker.json"))
	require.NoError(t, err)

	store := records.NewStore(papersDir, indexFile)
	keywords := []string{"sales", "marketing", "customer", "support", "automation", "analytics"}

	paper := domain.Paper{
		ID:    "2511.00001",
		Title: "A Study of Widgets",
		URL:   "https://huggingface.co/papers/2511.00001",
	}
	f := newFixture(paper)

	agent := NewAgent(f.lister, f.resolver, fileWritingFetcher{},
		pdf.Unavailable{}, analysis.NewKeyword(keywords), ledger, store, 0)

	month := testMonth(t)
	summary, err := agent.ProcessMonth(context.Background(), month, driving.ProcessOptions{})
	require.NoError(t, err)
	assert.Equal(t, driving.RunSummary{Found: 1, Processed: 1}, summary)

	// The PDF was downloaded and kept.
	pdfPath := filepath.Join(papersDir, "2025-11", "A-Study-of-Widgets.pdf")
	_, err = os.Stat(pdfPath)
	require.NoError(t, err)

	// The record opens with the title and carries the fallback notice.
	mdPath := filepath.Join(papersDir, "2025-11", "A-Study-of-Widgets.md")
	content, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	lines := strings.SplitN(string(content), "\n", 2)
	assert.Equal(t, "# A Study of Widgets", lines[0])
	assert.Contains(t, string(content), analysis.FallbackNotice)

	// The ledger marks the paper complete, so a second run skips it.
	assert.True(t, ledger.IsComplete(paper.ID, month))

	second, err := agent.ProcessMonth(context.Background(), month, driving.ProcessOptions{})
	require.NoError(t, err)
	assert.Equal(t, driving.RunSummary{Found: 1, Skipped: 1}, second)

	// The index lists the new record.
	index, err := os.ReadFile(indexFile)
	require.NoError(t, err)
	assert.Contains(t, string(index), "A Study of Widgets")
	assert.Contains(t, string(index), "Total papers: 1")
}
