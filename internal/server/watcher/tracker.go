package watcher

import (
	"strings"
	"sync"

	"github.com/NaFo61/BervinovAcademy/internal/server/registry"
)

// Tracker remembers the last observed value of every translatable field,
// keyed by (kind, record id, field). It is an explicit in-memory side table:
// primed when a record is loaded or first saved, advanced on every processed
// change, and cleared when a record is disposed of. Values are never
// persisted.
type Tracker struct {
	mu   sync.Mutex
	seen map[string]string
}

func NewTracker() *Tracker {
	return &Tracker{seen: make(map[string]string)}
}

func trackerKey(kind, id, field string) string {
	return strings.ToLower(kind) + "\x00" + id + "\x00" + field
}

// Observed returns the previously observed value for the field, if any.
func (t *Tracker) Observed(kind, id, field string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.seen[trackerKey(kind, id, field)]
	return v, ok
}

// Observe records the current value for the field.
func (t *Tracker) Observe(kind, id, field, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seen[trackerKey(kind, id, field)] = value
}

// Prime records the current values of all translatable fields of rec.
// Call it after loading a record so that a later unchanged save is a no-op.
func (t *Tracker) Prime(rec registry.Record) {
	for _, f := range rec.TranslatableFields() {
		if v, ok := rec.Field(f); ok {
			t.Observe(rec.Kind(), rec.ID(), f, v)
		}
	}
}

// Forget drops all tracked state for a record.
func (t *Tracker) Forget(kind, id string) {
	prefix := strings.ToLower(kind) + "\x00" + id + "\x00"
	t.mu.Lock()
	defer t.mu.Unlock()
	for k := range t.seen {
		if strings.HasPrefix(k, prefix) {
			delete(t.seen, k)
		}
	}
}
