// Package service orchestrates lookup-or-dispatch against the translation
// memory: cache hits return synchronously, misses enqueue asynchronous work
// and surface the pending marker.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/NaFo61/BervinovAcademy/internal/common"
	"github.com/NaFo61/BervinovAcademy/internal/dbx"
	"github.com/NaFo61/BervinovAcademy/internal/logging"
	"github.com/NaFo61/BervinovAcademy/internal/server/memory"
	"github.com/NaFo61/BervinovAcademy/internal/server/models"
	"github.com/NaFo61/BervinovAcademy/internal/server/queue"
)

// Lookup is the read-only slice of the memory store the service needs.
type Lookup interface {
	Lookup(ctx context.Context, key memory.Key) (*models.TranslationEntry, error)
}

type Service struct {
	store  Lookup
	queue  queue.Queue
	logger logging.Logger
}

func NewService(store Lookup, q queue.Queue, logger logging.Logger) *Service {
	return &Service{store: store, queue: q, logger: logger}
}

// GetTranslation returns the cached translation for (text, sourceLang,
// targetLang, jobContext), or dispatches an asynchronous job and returns
// common.ErrTranslationPending.
//
// Dispatch is deferred until the caller's unit of work commits (see
// dbx.RunAfterCommit): a worker must never observe a job whose triggering
// data is not yet visible. Empty text translates to itself.
func (s *Service) GetTranslation(ctx context.Context, text, sourceLang, targetLang, jobContext string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	key := memory.Key{
		SourceText: text,
		SourceLang: sourceLang,
		TargetLang: targetLang,
		Context:    jobContext,
	}

	entry, err := s.store.Lookup(ctx, key)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return "", err
	}
	if entry != nil {
		if entry.Translated() {
			return entry.TargetText, nil
		}
		// A row without a target means a translation is already on its
		// way (or awaits manual review); dispatching again would only
		// race the uniqueness constraint.
		return "", common.ErrTranslationPending
	}

	job := &models.TranslationJob{
		SourceText: text,
		SourceLang: sourceLang,
		TargetLang: targetLang,
		Context:    jobContext,
	}

	dbx.RunAfterCommit(ctx, func(ctx context.Context) {
		if err := s.queue.Enqueue(ctx, job); err != nil {
			// A lost dispatch is recoverable: the next request for the
			// same text re-enters this path.
			s.logger.Error(ctx, "failed to enqueue translation job",
				"context", jobContext, "source_lang", sourceLang, "target_lang", targetLang, "error", err)
		}
	})

	return "", common.ErrTranslationPending
}
