package domain

import (
	"fmt"
	"time"
)

// Ledger entry statuses. An entry is either complete or failed; the latest
// write for a key wins and no history is retained.
const (
	StatusComplete = "complete"
	StatusFailed   = "failed"
)

// LedgerKey builds the ledger key for a paper within a month.
func LedgerKey(month Month, paperID string) string {
	return fmt.Sprintf("%s/%s", month, paperID)
}

// RecordMeta is the metadata blob stored with a complete ledger entry.
type RecordMeta struct {
	Title   string `json:"title"`
	PDFPath string `json:"pdf_path"`
	MDPath  string `json:"md_path"`
	URL     string `json:"url"`
}

// LedgerEntry is one ledger record, keyed by "{month}/{paper id}".
type LedgerEntry struct {
	Status string `json:"status"`

	// DownloadedAt is set on complete entries.
	DownloadedAt *time.Time `json:"downloaded_at,omitempty"`

	// AttemptedAt is set on failed entries.
	AttemptedAt *time.Time `json:"attempted_at,omitempty"`

	Metadata *RecordMeta `json:"metadata,omitempty"`
	Error    string      `json:"error,omitempty"`
}
