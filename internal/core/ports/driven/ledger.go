package driven

import "github.com/flywheel-labs/paperscout/internal/core/domain"

// Ledger tracks processed papers to avoid duplicate work across runs.
//
// Both recording operations overwrite any prior entry for the same
// (month, id) key and persist the full ledger synchronously before
// returning. The system is single-process; concurrent external writers
// are undefined behaviour.
type Ledger interface {
	// IsComplete reports whether the paper was fully processed before.
	IsComplete(paperID string, month domain.Month) bool

	// RecordSuccess marks the paper complete with its output metadata.
	RecordSuccess(paperID string, month domain.Month, meta domain.RecordMeta) error

	// RecordFailure marks the paper failed with a reason string.
	RecordFailure(paperID string, month domain.Month, reason string) error
}
