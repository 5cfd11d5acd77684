package driven

import "github.com/flywheel-labs/paperscout/internal/core/domain"

// RecordPaths are the filesystem locations planned for one paper's output.
type RecordPaths struct {
	// PDF is where the downloaded asset lands.
	PDF string

	// Markdown is where the rendered record lands.
	Markdown string
}

// RecordStore renders per-paper records and maintains the aggregate index.
type RecordStore interface {
	// Paths returns the output locations for a paper, derived from its
	// sanitised title. The month directory is created if missing.
	Paths(month domain.Month, paper domain.Paper) (RecordPaths, error)

	// WriteRecord renders the markdown record for a successfully
	// processed paper, overwriting any existing file at the path.
	WriteRecord(paths RecordPaths, paper domain.Paper, detail domain.PaperDetail,
		analysis domain.Analysis, fullText string) error

	// RebuildIndex regenerates the aggregate index from the filesystem
	// state. The index is always recomputed in full, never patched.
	RebuildIndex() error
}
