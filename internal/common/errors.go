// Package common provides shared utilities and types used across the application.
package common

import "errors"

// Common application errors.
var (
	// Storage errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrInvalidInput is the root of every storage validation error; the
	// per-check sentinels in internal/storage wrap it.
	ErrInvalidInput = errors.New("invalid input")

	// ErrClassifierUnavailable wraps hosted classifier transport and API
	// failures; the engine matches on it when taking the keyword fallback.
	ErrClassifierUnavailable = errors.New("classifier unavailable")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)
