package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/NaFo61/BervinovAcademy/internal/common"
	"github.com/NaFo61/BervinovAcademy/internal/dbx"
	"github.com/NaFo61/BervinovAcademy/internal/server/models"
)

// PostgresQueue implements Queue over the translation_jobs table using
// lease-based claims (FOR UPDATE SKIP LOCKED), so multiple worker processes
// can poll the same table without double-claiming live jobs.
type PostgresQueue struct {
	db dbx.DBTX
}

func NewPostgresQueue(db dbx.DBTX) *PostgresQueue {
	return &PostgresQueue{db: db}
}

func (q *PostgresQueue) Enqueue(ctx context.Context, job *models.TranslationJob) error {
	query := `
		INSERT INTO translation_jobs (source_text, source_lang, target_lang, context)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := q.db.QueryRowContext(ctx, query,
		job.SourceText, job.SourceLang, job.TargetLang, job.Context).Scan(&job.ID)
	if err != nil {
		return fmt.Errorf("failed to enqueue job: %w", err)
	}
	return nil
}

func (q *PostgresQueue) Claim(ctx context.Context, lease time.Duration) (*models.TranslationJob, error) {
	query := `
		UPDATE translation_jobs
		SET locked_until = now() + make_interval(secs => $1), attempts = attempts + 1
		WHERE id = (
			SELECT id FROM translation_jobs
			WHERE locked_until IS NULL OR locked_until < now()
			ORDER BY id
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, source_text, source_lang, target_lang, context, attempts, locked_until, created_at
	`
	row := q.db.QueryRowContext(ctx, query, lease.Seconds())

	var job models.TranslationJob
	err := row.Scan(
		&job.ID, &job.SourceText, &job.SourceLang, &job.TargetLang,
		&job.Context, &job.Attempts, &job.LockedUntil, &job.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim job: %w", err)
	}
	return &job, nil
}

func (q *PostgresQueue) Complete(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM translation_jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
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
