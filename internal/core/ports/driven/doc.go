// Package driven defines the interfaces the core depends on.
// Adapters under internal/adapters/driven implement them.
//
// The scraping interfaces (PaperLister, DetailResolver) deliberately hide
// the listing site's markup heuristics: the markup is an external contract
// versioned without notice, so the heuristic must be swappable without
// touching the orchestration logic.
package driven
