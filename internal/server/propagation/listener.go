// Package propagation writes completed translations back onto the records
// they serve. The memory entry carries no foreign key: matching is done by
// context and source text, so one entry can backfill any number of records
// and manually approved translations reach records retroactively.
package propagation

import (
	"context"
	"strings"

	"github.com/NaFo61/BervinovAcademy/internal/logging"
	"github.com/NaFo61/BervinovAcademy/internal/server/models"
	"github.com/NaFo61/BervinovAcademy/internal/server/registry"
)

type Listener struct {
	reg    *registry.Registry
	logger logging.Logger
}

func New(reg *registry.Registry, logger logging.Logger) *Listener {
	return &Listener{reg: reg, logger: logger.With("component", "propagation")}
}

// EntryCommitted implements memory.Observer. Every failure mode here is
// non-fatal: stale or speculative context strings are expected in the
// memory table and must never break the committing caller.
func (l *Listener) EntryCommitted(ctx context.Context, entry *models.TranslationEntry) {
	if entry.Context == "" || entry.TargetText == "" {
		return
	}

	kindName, fieldName, ok := strings.Cut(entry.Context, ".")
	if !ok {
		return
	}

	kind, ok := l.reg.Resolve(kindName)
	if !ok {
		// Possibly leftover legacy data referencing a kind unknown to
		// this process.
		l.logger.Warn(ctx, "context references unknown kind", "context", entry.Context)
		return
	}

	records := l.findRecords(ctx, kind, fieldName, entry.SourceText)
	if len(records) == 0 {
		return
	}

	targetField := fieldName + "_" + entry.TargetLang
	if !kind.HasField(targetField) {
		l.logger.Warn(ctx, "kind has no target field",
			"kind", kind.Name, "field", targetField)
		return
	}

	for _, rec := range records {
		if current, _ := rec.Field(targetField); current == entry.TargetText {
			continue
		}
		rec.SetField(targetField, entry.TargetText)
		if err := kind.Store.Save(ctx, rec, targetField); err != nil {
			l.logger.Error(ctx, "failed to propagate translation",
				"kind", kind.Name, "record_id", rec.ID(), "field", targetField, "error", err)
			continue
		}
		l.logger.Info(ctx, "translation propagated",
			"kind", kind.Name, "record_id", rec.ID(), "field", targetField)
	}
}

// findRecords matches by the base field first, then the shadow fields, so a
// record found by its canonical value wins over one found by a mirror.
func (l *Listener) findRecords(ctx context.Context, kind *registry.Kind, fieldName, sourceText string) []registry.Record {
	for _, candidate := range []string{fieldName, fieldName + "_ru", fieldName + "_en"} {
		if !kind.HasField(candidate) {
			continue
		}
		records, err := kind.Store.FindByField(ctx, candidate, sourceText)
		if err != nil {
			l.logger.Error(ctx, "record lookup failed",
				"kind", kind.Name, "field", candidate, "error", err)
			continue
		}
		if len(records) > 0 {
			return records
		}
	}
	return nil
}
