package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure; no infrastructure dependency.

var (
	// Request errors
	ErrUnknownAction   = errors.New("unknown action")
	ErrNegativeAmount  = errors.New("coin amount must be non-negative")
	ErrNegativeSeconds = errors.New("study seconds must be non-negative")

	// Store errors
	ErrWriteFailed = errors.New("failed to persist accounting record")
)
