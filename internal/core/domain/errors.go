package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidMonth indicates a month argument that is not YYYY-MM.
	// This is fatal before any processing begins.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrMalformedLedger indicates the ledger file on disk could not be
	// decoded. This is fatal at startup; no recovery is attempted.
	ErrMalformedLedger = errors.New("malformed ledger file")

	// ErrNoPDFURL indicates detail resolution yielded no usable PDF link.
	ErrNoPDFURL = errors.New("No PDF URL found")

	// ErrDownloadFailed indicates the PDF could not be fetched.
	ErrDownloadFailed = errors.New("PDF download failed")

	// ErrLLMUnavailable indicates no model credential is configured.
	// Analysis falls back to the keyword method; this is a capability
	// reduction, never surfaced as a pipeline failure.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrModelNotFound indicates the requested model id does not exist.
	// The analyser advances to the next candidate on this error only.
	ErrModelNotFound = errors.New("model not found")
)
