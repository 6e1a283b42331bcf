package memory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/NaFo61/BervinovAcademy/internal/common"
	"github.com/NaFo61/BervinovAcademy/internal/dbx"
	"github.com/NaFo61/BervinovAcademy/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PostgresRepository implements the memory table over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Lookup(ctx context.Context, key Key) (*models.TranslationEntry, error) {
	query := `
		SELECT id, source_text, source_lang, target_lang, target_text, context,
		       is_approved, last_edited_by, created_at, updated_at
		FROM translation_memory
		WHERE source_text = $1 AND source_lang = $2 AND target_lang = $3 AND context = $4
	`
	row := r.db.QueryRowContext(ctx, query, key.SourceText, key.SourceLang, key.TargetLang, key.Context)

	var item models.TranslationEntry
	err := row.Scan(
		&item.ID, &item.SourceText, &item.SourceLang, &item.TargetLang, &item.TargetText,
		&item.Context, &item.IsApproved, &item.LastEditedBy, &item.CreatedAt, &item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up translation: %w", err)
	}
	return &item, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, entry *models.TranslationEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	query := `
		INSERT INTO translation_memory
			(id, source_text, source_lang, target_lang, target_text, context, is_approved, last_edited_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.SourceText, entry.SourceLang, entry.TargetLang,
		entry.TargetText, entry.Context, entry.IsApproved, entry.LastEditedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return common.ErrDuplicateEntry
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// SetTargetText updates an existing entry in place. The is_approved guard
// keeps reviewed translations authoritative: the automated path can never
// overwrite them.
func (r *PostgresRepository) SetTargetText(ctx context.Context, key Key, targetText string) error {
	query := `
		UPDATE translation_memory
		SET target_text = $1, updated_at = now()
		WHERE source_text = $2 AND source_lang = $3 AND target_lang = $4 AND context = $5
		  AND NOT is_approved
	`
	res, err := r.db.ExecContext(ctx, query, targetText, key.SourceText, key.SourceLang, key.TargetLang, key.Context)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) Approve(ctx context.Context, id, editorID string) error {
	query := `
		UPDATE translation_memory
		SET is_approved = true, last_edited_by = $2, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, editorID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.TranslationEntry, error) {
	query := `
		SELECT id, source_text, source_lang, target_lang, target_text, context,
		       is_approved, last_edited_by, created_at, updated_at
		FROM translation_memory
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)

	var item models.TranslationEntry
	err := row.Scan(
		&item.ID, &item.SourceText, &item.SourceLang, &item.TargetLang, &item.TargetText,
		&item.Context, &item.IsApproved, &item.LastEditedBy, &item.CreatedAt, &item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get translation: %w", err)
	}
	return &item, nil
}
