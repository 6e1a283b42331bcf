// Package memory implements the translation memory: the persistent table
// answering "has this exact string been translated before". The repository
// is passive storage; Store adds observer notification on commit.
package memory

import (
	"context"

	"github.com/NaFo61/BervinovAcademy/internal/server/models"
)

// Key is the deduplication key of the memory table. At most one entry
// exists per key; a racing duplicate insert fails with ErrDuplicateEntry
// instead of silently creating a second row.
type Key struct {
	SourceText string
	SourceLang string
	TargetLang string
	Context    string
}

// KeyOf extracts the deduplication key from an entry.
func KeyOf(entry *models.TranslationEntry) Key {
	return Key{
		SourceText: entry.SourceText,
		SourceLang: entry.SourceLang,
		TargetLang: entry.TargetLang,
		Context:    entry.Context,
	}
}

type Repository interface {
	// Lookup is an exact-match query on the unique key.
	// Returns common.ErrNotFound when no entry exists.
	Lookup(ctx context.Context, key Key) (*models.TranslationEntry, error)

	// Insert adds a new entry. A unique-key collision returns
	// common.ErrDuplicateEntry.
	Insert(ctx context.Context, entry *models.TranslationEntry) error

	// SetTargetText fills the translation of an existing unapproved entry.
	// Approved entries are left untouched; if no updatable row matches,
	// common.ErrNotFound is returned.
	SetTargetText(ctx context.Context, key Key, targetText string) error

	// Approve marks an entry as manually reviewed and records the reviewer.
	Approve(ctx context.Context, id, editorID string) error

	// GetByID fetches a single entry by primary key.
	GetByID(ctx context.Context, id string) (*models.TranslationEntry, error)
}
