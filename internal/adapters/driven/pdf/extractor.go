// Package pdf extracts plain text from downloaded PDFs by shelling out to
// the pdftotext tool (poppler).
//
// Extraction is capability gated: the variant is chosen once at
// construction, and a missing tool or a decoding failure degrades to a
// sentinel string instead of failing the pipeline. A paper whose PDF
// downloaded fine must never fail because its text could not be decoded.
package pdf

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/flywheel-labs/paperscout/internal/core/ports/driven"
	"github.com/flywheel-labs/paperscout/internal/logger"
)

// Sentinel strings returned in place of extracted text.
const (
	// TextUnavailable is returned when pdftotext is not installed.
	TextUnavailable = "[PDF text extraction requires the pdftotext tool]"

	// TextFailed is returned when pdftotext errors on a file.
	TextFailed = "[Error extracting text from PDF]"
)

// ErrPDFToolNotFound indicates pdftotext is not in PATH.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// CheckAvailable reports whether pdftotext can be invoked.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform hints for installing pdftotext.
func InstallInstructions() string {
	return "pdftotext is part of poppler: `brew install poppler` (macOS) or `apt install poppler-utils` (Debian/Ubuntu)"
}

// CommandRunner abstracts command execution for testing.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// New selects the extraction variant once: the pdftotext-backed extractor
// when the tool is present, the degraded variant otherwise.
func New() driven.TextExtractor {
	if err := CheckAvailable(); err != nil {
		logger.Warn("%v; extracted text will be unavailable. %s", err, InstallInstructions())
		return Unavailable{}
	}
	return &Extractor{runner: execRunner{}}
}

// Ensure both variants implement the interface.
var (
	_ driven.TextExtractor = (*Extractor)(nil)
	_ driven.TextExtractor = Unavailable{}
)

// Extractor converts PDFs to text with pdftotext.
type Extractor struct {
	runner CommandRunner
}

// NewWithRunner creates an extractor with a custom command runner.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// Extract runs pdftotext and returns its output with pages separated by
// blank lines. Decoding errors degrade to the TextFailed sentinel.
func (e *Extractor) Extract(ctx context.Context, pdfPath string) string {
	out, err := e.runner.Run(ctx, "pdftotext", "-layout", pdfPath, "-")
	if err != nil {
		logger.Warn("pdftotext failed on %s: %v", pdfPath, err)
		return TextFailed
	}

	// pdftotext separates pages with form feeds.
	pages := strings.Split(string(out), "\f")
	for i, page := range pages {
		pages[i] = strings.TrimRight(page, "\n")
	}
	return strings.TrimSpace(strings.Join(pages, "\n\n"))
}

// Unavailable is the degraded variant used when pdftotext is missing.
type Unavailable struct{}

// Extract returns the fixed unavailability sentinel.
func (Unavailable) Extract(context.Context, string) string {
	return TextUnavailable
}
