// Package registry resolves record kinds by name.
//
// Context strings such as "Specialization.title" used to require scanning
// every registered model; here each translatable kind is registered once at
// startup and resolution is a case-insensitive map lookup.
package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/NaFo61/BervinovAcademy/internal/common"
	"github.com/NaFo61/BervinovAcademy/internal/langdetect"
)

// Record is the capability a translatable entity exposes to the pipeline:
// a kind name, a primary key, the declared translatable base fields, and
// get/set access to fields by name (base and language-suffixed shadows).
type Record interface {
	Kind() string
	ID() string
	TranslatableFields() []string
	Field(name string) (string, bool)
	SetField(name, value string) bool
}

// RecordStore persists records of a single kind.
//
// Save with an explicit field list must write only those attributes (narrow
// write); FindByField matches the given field's value case-insensitively.
type RecordStore interface {
	Save(ctx context.Context, rec Record, fields ...string) error
	FindByField(ctx context.Context, field, value string) ([]Record, error)
}

// Kind describes one registered translatable record kind.
type Kind struct {
	Name   string
	Fields []string // translatable base field names
	Store  RecordStore

	fieldSet map[string]struct{}
}

// HasField reports whether name is a base field or a shadow field of this kind.
func (k *Kind) HasField(name string) bool {
	_, ok := k.fieldSet[name]
	return ok
}

// Registry maps lowercased kind names to kind descriptors. Built once at
// startup; lookups afterwards are read-only, so no locking is needed.
type Registry struct {
	kinds map[string]*Kind
}

func New() *Registry {
	return &Registry{kinds: make(map[string]*Kind)}
}

// Register adds a kind. The field resolution table is derived from the base
// field names: every base field implies its _ru and _en shadows.
func (r *Registry) Register(name string, fields []string, store RecordStore) error {
	key := strings.ToLower(name)
	if _, ok := r.kinds[key]; ok {
		return fmt.Errorf("%q: %w", name, common.ErrKindRegistered)
	}

	fieldSet := make(map[string]struct{}, len(fields)*3)
	for _, f := range fields {
		fieldSet[f] = struct{}{}
		fieldSet[f+"_"+langdetect.Russian] = struct{}{}
		fieldSet[f+"_"+langdetect.English] = struct{}{}
	}

	r.kinds[key] = &Kind{
		Name:     name,
		Fields:   fields,
		Store:    store,
		fieldSet: fieldSet,
	}
	return nil
}

// Resolve finds a kind by name, case-insensitively.
func (r *Registry) Resolve(name string) (*Kind, bool) {
	k, ok := r.kinds[strings.ToLower(name)]
	return k, ok
}
