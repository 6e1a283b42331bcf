// Package common defines shared sentinel errors used across the translation
// pipeline. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate translation entry")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")

	// ErrTranslationPending is the pending marker: the requested translation
	// is not in the memory table yet and a job has been dispatched.
	ErrTranslationPending = errors.New("translation in progress")

	// ErrTranslationUnavailable is returned by the translator client when the
	// external capability rejects or cannot serve a call.
	ErrTranslationUnavailable = errors.New("translation capability unavailable")

	// Registry errors.
	ErrUnknownKind    = errors.New("unknown record kind")
	ErrKindRegistered = errors.New("record kind already registered")
)
