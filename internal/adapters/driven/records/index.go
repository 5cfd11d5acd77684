package records

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flywheel-labs/paperscout/internal/logger"
)

// indexEntry is one record discovered while scanning the papers tree.
type indexEntry struct {
	month string
	title string
	// relPath is the record's path, slash separated, relative to the
	// directory holding the index file.
	relPath string
}

// RebuildIndex regenerates the aggregate index from the filesystem state:
// month directories in reverse lexicographic order, record files in
// lexicographic filename order within each. Never patched incrementally.
func (s *Store) RebuildIndex() error {
	entries, err := s.collect()
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("# AI Papers Index\n\n")
	fmt.Fprintf(&b, "Last updated: %s\n\n", s.now().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Total papers: %d\n\n", len(entries))
	b.WriteString("## Papers by Month\n")

	currentMonth := ""
	for _, e := range entries {
		if e.month != currentMonth {
			fmt.Fprintf(&b, "\n### %s\n\n", e.month)
			currentMonth = e.month
		}
		fmt.Fprintf(&b, "- [%s](%s)\n", e.title, e.relPath)
	}

	if err := os.WriteFile(s.indexFile, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	logger.Info("index updated: %s", s.indexFile)
	return nil
}

func (s *Store) collect() ([]indexEntry, error) {
	dirEntries, err := os.ReadDir(s.papersDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read papers directory: %w", err)
	}

	var months []string
	for _, de := range dirEntries {
		if de.IsDir() {
			months = append(months, de.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	indexDir := filepath.Dir(s.indexFile)

	var entries []indexEntry
	for _, month := range months {
		monthDir := filepath.Join(s.papersDir, month)
		files, err := os.ReadDir(monthDir)
		if err != nil {
			return nil, fmt.Errorf("read month directory %s: %w", month, err)
		}

		var names []string
		for _, f := range files {
			if !f.IsDir() && strings.HasSuffix(f.Name(), ".md") {
				names = append(names, f.Name())
			}
		}
		sort.Strings(names)

		for _, name := range names {
			full := filepath.Join(monthDir, name)
			rel, err := filepath.Rel(indexDir, full)
			if err != nil {
				rel = full
			}
			entries = append(entries, indexEntry{
				month:   month,
				title:   titleOf(full, name),
				relPath: path.Clean(filepath.ToSlash(rel)),
			})
		}
	}
	return entries, nil
}

// titleOf reads a record's title from its first line, falling back to the
// filename when the file cannot be read.
func titleOf(path, name string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("read record %s: %v", path, err)
		return strings.TrimSuffix(name, ".md")
	}
	firstLine, _, _ := strings.Cut(string(data), "\n")
	return strings.TrimPrefix(strings.TrimSpace(firstLine), "# ")
}
