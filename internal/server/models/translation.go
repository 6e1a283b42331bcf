// Package models holds the pipeline's persistent data structures.
package models

import "time"

// TranslationEntry is a row of the translation memory table.
//
// The tuple (SourceText, SourceLang, TargetLang, Context) is unique: at most
// one entry exists per exact input under a given context. TargetText stays
// empty until the async worker (or a reviewer) supplies a translation.
type TranslationEntry struct {
	ID         string
	SourceText string
	SourceLang string
	TargetLang string
	TargetText string

	// Context names the field this entry serves, e.g. "Specialization.title".
	// Empty for untracked lookups.
	Context string

	// IsApproved is set only by manual review. Approved entries are
	// authoritative and never overwritten by automated translation.
	IsApproved   bool
	LastEditedBy string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Translated reports whether the entry carries a usable translation.
func (e *TranslationEntry) Translated() bool {
	return e.TargetText != ""
}

// TranslationJob is a unit of asynchronous translation work. Delivery is
// at-least-once; consumers must treat duplicates as no-ops.
type TranslationJob struct {
	ID         int64
	SourceText string
	SourceLang string
	TargetLang string
	Context    string

	// Attempts counts deliveries, not in-process retries.
	Attempts    int
	LockedUntil time.Time
	CreatedAt   time.Time
}
