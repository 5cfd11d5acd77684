// Package file provides the JSON-backed ledger.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/flywheel-labs/paperscout/internal/core/domain"
	"github.com/flywheel-labs/paperscout/internal/core/ports/driven"
)

// Ensure Ledger implements the interface.
var _ driven.Ledger = (*Ledger)(nil)

// ledgerDocument is the on-disk shape: {"papers": {"<month>/<id>": ...}}.
type ledgerDocument struct {
	Papers map[string]domain.LedgerEntry `json:"papers"`
}

// Ledger tracks processed papers in a single JSON file. Every mutation
// rewrites the whole file synchronously before returning; that write-
// through discipline is the only consistency mechanism, so a mid-run
// interruption loses at most the in-flight paper.
type Ledger struct {
	path string
	doc  ledgerDocument
	now  func() time.Time
}

// NewLedger loads the ledger at path. A missing file yields an empty
// ledger; a malformed file is a fatal startup error, no recovery is
// attempted.
func NewLedger(path string) (*Ledger, error) {
	l := &Ledger{
		path: path,
		doc:  ledgerDocument{Papers: make(map[string]domain.LedgerEntry)},
		now:  time.Now,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	if err := json.Unmarshal(data, &l.doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedLedger, path, err)
	}
	if l.doc.Papers == nil {
		l.doc.Papers = make(map[string]domain.LedgerEntry)
	}
	return l, nil
}

// IsComplete reports whether the paper was fully processed before.
func (l *Ledger) IsComplete(paperID string, month domain.Month) bool {
	entry, ok := l.doc.Papers[domain.LedgerKey(month, paperID)]
	return ok && entry.Status == domain.StatusComplete
}

// RecordSuccess marks the paper complete, overwriting any prior entry.
func (l *Ledger) RecordSuccess(paperID string, month domain.Month, meta domain.RecordMeta) error {
	ts := l.now()
	l.doc.Papers[domain.LedgerKey(month, paperID)] = domain.LedgerEntry{
		Status:       domain.StatusComplete,
		DownloadedAt: &ts,
		Metadata:     &meta,
	}
	return l.save()
}

// RecordFailure marks the paper failed, overwriting any prior entry.
func (l *Ledger) RecordFailure(paperID string, month domain.Month, reason string) error {
	ts := l.now()
	l.doc.Papers[domain.LedgerKey(month, paperID)] = domain.LedgerEntry{
		Status:      domain.StatusFailed,
		AttemptedAt: &ts,
		Error:       reason,
	}
	return l.save()
}

func (l *Ledger) save() error {
	data, err := json.MarshalIndent(l.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}
