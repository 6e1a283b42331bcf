// Package entities persists translatable records and emits save events.
//
// Saves are narrow by design: callers name the fields they touched and only
// those columns are written, which keeps propagation writes from clobbering
// concurrent edits and lets the watcher tell shadow-only saves apart from
// real content changes. Observers are notified only after the enclosing
// unit of work commits.
package entities

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/NaFo61/BervinovAcademy/internal/dbx"
	"github.com/NaFo61/BervinovAcademy/internal/server/registry"
	"github.com/google/uuid"
)

// SaveObserver receives a notification after a record save commits.
// fields lists the explicitly written fields; nil means a full save.
type SaveObserver interface {
	RecordSaved(ctx context.Context, rec registry.Record, fields []string)
}

// mapper describes how one record kind maps onto its table.
type mapper struct {
	table   string
	columns []string // translatable columns, in insert order after id
	scan    func(rows *sql.Rows) (registry.Record, error)
}

// PostgresStore implements registry.RecordStore for a single kind.
type PostgresStore struct {
	db        dbx.DBTX
	m         mapper
	allowed   map[string]struct{}
	observers []SaveObserver
}

func newPostgresStore(db dbx.DBTX, m mapper) *PostgresStore {
	allowed := make(map[string]struct{}, len(m.columns))
	for _, c := range m.columns {
		allowed[c] = struct{}{}
	}
	return &PostgresStore{db: db, m: m, allowed: allowed}
}

// Register adds a save observer. Not safe for concurrent use; call during startup.
func (s *PostgresStore) Register(o SaveObserver) {
	s.observers = append(s.observers, o)
}

// Save persists rec. With an explicit field list only those columns are
// written; without one the whole record is upserted. Observers run after
// the surrounding transaction (if any) commits.
func (s *PostgresStore) Save(ctx context.Context, rec registry.Record, fields ...string) error {
	if len(fields) == 0 {
		if err := s.upsert(ctx, rec); err != nil {
			return err
		}
	} else {
		if err := s.update(ctx, rec, fields); err != nil {
			return err
		}
	}

	saved := append([]string(nil), fields...)
	dbx.RunAfterCommit(ctx, func(ctx context.Context) {
		for _, o := range s.observers {
			o.RecordSaved(ctx, rec, saved)
		}
	})
	return nil
}

func (s *PostgresStore) upsert(ctx context.Context, rec registry.Record) error {
	if rec.ID() == "" {
		if !rec.SetField("id", uuid.NewString()) {
			return fmt.Errorf("%s: record has no assignable id", s.m.table)
		}
	}

	cols := make([]string, 0, len(s.m.columns))
	placeholders := make([]string, 0, len(s.m.columns))
	sets := make([]string, 0, len(s.m.columns))
	args := make([]any, 0, len(s.m.columns)+1)
	args = append(args, rec.ID())

	for i, c := range s.m.columns {
		v, ok := rec.Field(c)
		if !ok {
			return fmt.Errorf("%s: record has no field %q", s.m.table, c)
		}
		cols = append(cols, c)
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
		args = append(args, v)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, %s)
		VALUES ($1, %s)
		ON CONFLICT (id)
		DO UPDATE SET %s, updated_at = now()
	`, s.m.table, strings.Join(cols, ", "), strings.Join(placeholders, ", "), strings.Join(sets, ", "))

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresStore) update(ctx context.Context, rec registry.Record, fields []string) error {
	if rec.ID() == "" {
		return fmt.Errorf("%s: cannot update record without id", s.m.table)
	}

	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for i, f := range fields {
		// The whitelist keeps caller-supplied field names out of the
		// query text unless they are known columns.
		if _, ok := s.allowed[f]; !ok {
			return fmt.Errorf("%s: unknown field %q", s.m.table, f)
		}
		v, ok := rec.Field(f)
		if !ok {
			return fmt.Errorf("%s: record has no field %q", s.m.table, f)
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", f, i+1))
		args = append(args, v)
	}
	args = append(args, rec.ID())

	query := fmt.Sprintf(`UPDATE %s SET %s, updated_at = now() WHERE id = $%d`,
		s.m.table, strings.Join(sets, ", "), len(args))

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// FindByField returns all records whose named column equals value,
// case-insensitively.
func (s *PostgresStore) FindByField(ctx context.Context, field, value string) ([]registry.Record, error) {
	if _, ok := s.allowed[field]; !ok {
		return nil, fmt.Errorf("%s: unknown field %q", s.m.table, field)
	}

	query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE lower(%s) = lower($1)`,
		strings.Join(s.m.columns, ", "), s.m.table, field)

	rows, err := s.db.QueryContext(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	var result []registry.Record
	for rows.Next() {
		rec, err := s.m.scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
