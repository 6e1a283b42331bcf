// Package worker consumes translation jobs: it is the only place the slow
// external call happens, decoupled from request paths via the durable queue.
package worker

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/NaFo61/BervinovAcademy/internal/common"
	"github.com/NaFo61/BervinovAcademy/internal/logging"
	"github.com/NaFo61/BervinovAcademy/internal/server/memory"
	"github.com/NaFo61/BervinovAcademy/internal/server/models"
	"github.com/NaFo61/BervinovAcademy/internal/server/queue"
	"github.com/NaFo61/BervinovAcademy/internal/server/translator"
	"github.com/sethvargo/go-retry"
)

// Store is the slice of the memory store the worker needs.
type Store interface {
	Lookup(ctx context.Context, key memory.Key) (*models.TranslationEntry, error)
	Commit(ctx context.Context, entry *models.TranslationEntry) error
}

// Options bound the pool's polling and retry behavior.
type Options struct {
	Workers      int
	PollInterval time.Duration
	JobLease     time.Duration

	// RetryAttempts is the total number of calls to the external
	// capability per delivery, RetryBackoff the fixed delay between them.
	RetryAttempts int
	RetryBackoff  time.Duration
}

// Pool runs N goroutines that claim, process and complete jobs. Processing
// is idempotent: duplicate deliveries stop at the memory-table pre-check or
// collapse into the uniqueness constraint on commit.
type Pool struct {
	queue      queue.Queue
	store      Store
	translator translator.Translator
	opts       Options
	logger     logging.Logger
}

func NewPool(q queue.Queue, store Store, tr translator.Translator, opts Options, logger logging.Logger) *Pool {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Pool{
		queue:      q,
		store:      store,
		translator: tr,
		opts:       opts,
		logger:     logger.With("component", "worker"),
	}
}

// Run blocks until ctx is cancelled and all workers have drained.
func (p *Pool) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < p.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.loop(ctx)
		}()
	}
	wg.Wait()
}

func (p *Pool) loop(ctx context.Context) {
	for {
		job, err := p.queue.Claim(ctx, p.opts.JobLease)
		if err != nil {
			if !errors.Is(err, common.ErrNotFound) {
				p.logger.Error(ctx, "failed to claim job", "error", err)
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(p.opts.PollInterval):
			}
			continue
		}
		p.Process(ctx, job)

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// Process handles a single delivery. Failures never propagate: a job that
// exhausts its retries is abandoned, and the absence of a memory entry is
// the failure signal — any future request for the same text starts over.
func (p *Pool) Process(ctx context.Context, job *models.TranslationJob) {
	log := p.logger.With("job_id", job.ID, "context", job.Context,
		"source_lang", job.SourceLang, "target_lang", job.TargetLang)

	key := memory.Key{
		SourceText: job.SourceText,
		SourceLang: job.SourceLang,
		TargetLang: job.TargetLang,
		Context:    job.Context,
	}

	// Idempotence guard against duplicate delivery.
	if _, err := p.store.Lookup(ctx, key); err == nil {
		log.Debug(ctx, "entry already exists, skipping")
		p.complete(ctx, job)
		return
	} else if !errors.Is(err, common.ErrNotFound) {
		log.Error(ctx, "failed to pre-check memory table", "error", err)
		return // lease expiry will redeliver
	}

	var translated string
	backoff := retry.WithMaxRetries(uint64(p.opts.RetryAttempts-1), retry.NewConstant(p.opts.RetryBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		out, err := p.translator.Translate(ctx, job.SourceText, job.SourceLang, job.TargetLang)
		if err != nil {
			return retry.RetryableError(err)
		}
		translated = out
		return nil
	})
	if err != nil {
		log.Warn(ctx, "translation abandoned after retries",
			"attempts", p.opts.RetryAttempts, "error", err)
		p.complete(ctx, job)
		return
	}

	entry := &models.TranslationEntry{
		SourceText: job.SourceText,
		SourceLang: job.SourceLang,
		TargetLang: job.TargetLang,
		TargetText: strings.TrimSpace(translated),
		Context:    job.Context,
	}
	if err := p.store.Commit(ctx, entry); err != nil {
		log.Error(ctx, "failed to commit translation", "error", err)
		return // redeliver; the pre-check keeps the retry cheap
	}

	log.Info(ctx, "translation stored")
	p.complete(ctx, job)
}

func (p *Pool) complete(ctx context.Context, job *models.TranslationJob) {
	if err := p.queue.Complete(ctx, job.ID); err != nil && !errors.Is(err, common.ErrNotFound) {
		p.logger.Error(ctx, "failed to complete job", "job_id", job.ID, "error", err)
	}
}
