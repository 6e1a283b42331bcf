package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/NaFo61/BervinovAcademy/internal/common"
	"github.com/NaFo61/BervinovAcademy/internal/logging"
	"github.com/NaFo61/BervinovAcademy/internal/server/models"
)

// Observer is notified after an entry with both a context and a target text
// has been durably committed. Registration replaces the post-save signal the
// memory table used to rely on.
type Observer interface {
	EntryCommitted(ctx context.Context, entry *models.TranslationEntry)
}

// Store wraps the repository with observer notification. All automated
// writes to the memory table go through Commit so that propagation always
// sees completed entries.
type Store struct {
	repo      Repository
	observers []Observer
	logger    logging.Logger
}

func NewStore(repo Repository, logger logging.Logger) *Store {
	return &Store{repo: repo, logger: logger}
}

// Register adds an observer. Not safe for concurrent use; call during startup.
func (s *Store) Register(o Observer) {
	s.observers = append(s.observers, o)
}

func (s *Store) Lookup(ctx context.Context, key Key) (*models.TranslationEntry, error) {
	return s.repo.Lookup(ctx, key)
}

// Commit persists entry and notifies observers. A concurrent duplicate is
// not an error: the loser fills the target text of the winner's row (unless
// that row is approved) and re-reads, so callers always end up observing
// the surviving entry.
func (s *Store) Commit(ctx context.Context, entry *models.TranslationEntry) error {
	err := s.repo.Insert(ctx, entry)
	if errors.Is(err, common.ErrDuplicateEntry) {
		key := KeyOf(entry)
		if entry.TargetText != "" {
			if err := s.repo.SetTargetText(ctx, key, entry.TargetText); err != nil && !errors.Is(err, common.ErrNotFound) {
				return fmt.Errorf("failed to update existing entry: %w", err)
			}
		}
		existing, err := s.repo.Lookup(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to re-read entry after duplicate: %w", err)
		}
		*entry = *existing
	} else if err != nil {
		return err
	}

	s.notify(ctx, entry)
	return nil
}

// Approve marks an entry as reviewed and re-notifies observers, so manually
// approved translations retroactively reach any matching records.
func (s *Store) Approve(ctx context.Context, id, editorID string) error {
	if err := s.repo.Approve(ctx, id, editorID); err != nil {
		return err
	}
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.notify(ctx, entry)
	return nil
}

func (s *Store) notify(ctx context.Context, entry *models.TranslationEntry) {
	if entry.Context == "" || entry.TargetText == "" {
		return
	}
	for _, o := range s.observers {
		o.EntryCommitted(ctx, entry)
	}
}
