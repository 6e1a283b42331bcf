// Package queue is the asynchronous job dispatcher for translation work.
//
// Delivery is at-least-once with no ordering guarantee across distinct
// payloads: a claimed job whose lease expires becomes claimable again, so
// consumers must be idempotent. The interface is transport-agnostic; the
// default implementation keeps jobs in Postgres next to the data they
// reference, which makes post-commit visibility automatic.
package queue

import (
	"context"
	"time"

	"github.com/NaFo61/BervinovAcademy/internal/server/models"
)

type Queue interface {
	// Enqueue adds a job. Fire-and-forget: the caller gets no handle to
	// the job besides its durable existence.
	Enqueue(ctx context.Context, job *models.TranslationJob) error

	// Claim leases the oldest claimable job for the given duration and
	// increments its delivery counter. Returns common.ErrNotFound when
	// nothing is claimable.
	Claim(ctx context.Context, lease time.Duration) (*models.TranslationJob, error)

	// Complete removes a job. Used both for successfully processed and
	// for abandoned jobs; abandonment leaves its trace in the absence of
	// a memory entry, not in the queue.
	Complete(ctx context.Context, id int64) error
}
