// Package watcher turns record saves into translation requests.
//
// It runs as an after-commit save observer: for every changed translatable
// base field it mirrors the value into the matching source-language shadow
// field and asks the translation service for the opposite direction. Saves
// that only touch shadow fields are ignored, which is what breaks the
// recursion its own narrow writes would otherwise cause.
package watcher

import (
	"context"
	"errors"

	"github.com/NaFo61/BervinovAcademy/internal/common"
	"github.com/NaFo61/BervinovAcademy/internal/langdetect"
	"github.com/NaFo61/BervinovAcademy/internal/logging"
	"github.com/NaFo61/BervinovAcademy/internal/server/registry"
)

// Translations is the service slice the watcher depends on.
type Translations interface {
	GetTranslation(ctx context.Context, text, sourceLang, targetLang, jobContext string) (string, error)
}

type Watcher struct {
	tracker *Tracker
	svc     Translations
	reg     *registry.Registry
	logger  logging.Logger
}

func New(tracker *Tracker, svc Translations, reg *registry.Registry, logger logging.Logger) *Watcher {
	return &Watcher{
		tracker: tracker,
		svc:     svc,
		reg:     reg,
		logger:  logger.With("component", "watcher"),
	}
}

// RecordSaved implements entities.SaveObserver. fields lists the explicitly
// written fields of this save; nil means a full save.
func (w *Watcher) RecordSaved(ctx context.Context, rec registry.Record, fields []string) {
	if len(fields) > 0 && !touchesBaseField(rec, fields) {
		return
	}

	kind, ok := w.reg.Resolve(rec.Kind())
	if !ok {
		w.logger.Warn(ctx, "save event for unregistered kind", "kind", rec.Kind())
		return
	}

	for _, field := range rec.TranslatableFields() {
		w.processField(ctx, kind, rec, field)
	}
}

func (w *Watcher) processField(ctx context.Context, kind *registry.Kind, rec registry.Record, field string) {
	value, ok := rec.Field(field)
	if !ok {
		return
	}

	prev, _ := w.tracker.Observed(rec.Kind(), rec.ID(), field)
	if value == "" || value == prev {
		return
	}

	sourceLang := langdetect.Detect(value)
	targetLang := langdetect.Opposite(sourceLang)
	jobContext := rec.Kind() + "." + field

	// Mirror the original into its source-language shadow so that later
	// propagation lookups can match the record by the shadow field too.
	// The narrow save re-enters RecordSaved and is dropped as shadow-only.
	sourceShadow := field + "_" + sourceLang
	if rec.SetField(sourceShadow, value) {
		if err := kind.Store.Save(ctx, rec, sourceShadow); err != nil {
			w.logger.Error(ctx, "failed to mirror source value",
				"context", jobContext, "field", sourceShadow, "error", err)
		}
	}

	translated, err := w.svc.GetTranslation(ctx, value, sourceLang, targetLang, jobContext)
	switch {
	case err == nil && translated != "":
		targetShadow := field + "_" + targetLang
		if current, _ := rec.Field(targetShadow); current != translated {
			rec.SetField(targetShadow, translated)
			if err := kind.Store.Save(ctx, rec, targetShadow); err != nil {
				w.logger.Error(ctx, "failed to write cached translation",
					"context", jobContext, "field", targetShadow, "error", err)
			}
		}
	case errors.Is(err, common.ErrTranslationPending):
		w.logger.Debug(ctx, "translation dispatched", "context", jobContext, "target_lang", targetLang)
	case err != nil:
		w.logger.Error(ctx, "translation request failed", "context", jobContext, "error", err)
	}

	// Advance regardless of outcome so a later unrelated save does not
	// reprocess the same value.
	w.tracker.Observe(rec.Kind(), rec.ID(), field, value)
}

func touchesBaseField(rec registry.Record, fields []string) bool {
	base := make(map[string]struct{})
	for _, f := range rec.TranslatableFields() {
		base[f] = struct{}{}
	}
	for _, f := range fields {
		if _, ok := base[f]; ok {
			return true
		}
	}
	return false
}
