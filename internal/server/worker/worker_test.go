package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NaFo61/BervinovAcademy/internal/common"
	"github.com/NaFo61/BervinovAcademy/internal/logging"
	"github.com/NaFo61/BervinovAcademy/internal/server/memory"
	"github.com/NaFo61/BervinovAcademy/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------- test fakes --------

type fakeStore struct {
	entries   map[memory.Key]*models.TranslationEntry
	committed []*models.TranslationEntry
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[memory.Key]*models.TranslationEntry)}
}

func (f *fakeStore) Lookup(ctx context.Context, key memory.Key) (*models.TranslationEntry, error) {
	if e, ok := f.entries[key]; ok {
		return e, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeStore) Commit(ctx context.Context, entry *models.TranslationEntry) error {
	f.entries[memory.KeyOf(entry)] = entry
	f.committed = append(f.committed, entry)
	return nil
}

type fakeQueue struct {
	completed []int64
}

func (f *fakeQueue) Enqueue(ctx context.Context, job *models.TranslationJob) error { return nil }

func (f *fakeQueue) Claim(ctx context.Context, lease time.Duration) (*models.TranslationJob, error) {
	return nil, common.ErrNotFound
}

func (f *fakeQueue) Complete(ctx context.Context, id int64) error {
	f.completed = append(f.completed, id)
	return nil
}

type fakeTranslator struct {
	calls   int
	failing int // first N calls fail
	out     string
}

func (f *fakeTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	f.calls++
	if f.calls <= f.failing {
		return "", common.ErrTranslationUnavailable
	}
	return f.out, nil
}

func testOpts() Options {
	return Options{
		Workers:       1,
		PollInterval:  time.Millisecond,
		JobLease:      time.Minute,
		RetryAttempts: 3,
		RetryBackoff:  time.Millisecond,
	}
}

func testJob() *models.TranslationJob {
	return &models.TranslationJob{
		ID:         7,
		SourceText: "Backend",
		SourceLang: "en",
		TargetLang: "ru",
		Context:    "Specialization.title",
	}
}

// -------- tests --------

func TestProcess_Success(t *testing.T) {
	store := newFakeStore()
	q := &fakeQueue{}
	tr := &fakeTranslator{out: " Бэкенд "}
	p := NewPool(q, store, tr, testOpts(), logging.NewNopLogger())

	p.Process(context.Background(), testJob())

	require.Len(t, store.committed, 1)
	assert.Equal(t, "Бэкенд", store.committed[0].TargetText, "result must be trimmed")
	assert.Equal(t, []int64{7}, q.completed)
}

func TestProcess_RetriesTransientFailures(t *testing.T) {
	store := newFakeStore()
	q := &fakeQueue{}
	tr := &fakeTranslator{failing: 2, out: "Бэкенд"}
	p := NewPool(q, store, tr, testOpts(), logging.NewNopLogger())

	p.Process(context.Background(), testJob())

	assert.Equal(t, 3, tr.calls)
	require.Len(t, store.committed, 1)
}

func TestProcess_RetryExhaustionLeavesNoEntry(t *testing.T) {
	store := newFakeStore()
	q := &fakeQueue{}
	tr := &fakeTranslator{failing: 100}
	p := NewPool(q, store, tr, testOpts(), logging.NewNopLogger())

	p.Process(context.Background(), testJob())

	assert.Equal(t, 3, tr.calls, "exactly the bounded number of attempts")
	assert.Empty(t, store.committed, "an abandoned job must leave no entry")
	assert.Equal(t, []int64{7}, q.completed, "the job itself is removed")
}

func TestProcess_DuplicateDeliveryIsNoOp(t *testing.T) {
	store := newFakeStore()
	store.entries[memory.Key{
		SourceText: "Backend", SourceLang: "en", TargetLang: "ru", Context: "Specialization.title",
	}] = &models.TranslationEntry{SourceText: "Backend", TargetText: "Бэкенд"}

	q := &fakeQueue{}
	tr := &fakeTranslator{out: "ignored"}
	p := NewPool(q, store, tr, testOpts(), logging.NewNopLogger())

	p.Process(context.Background(), testJob())

	assert.Zero(t, tr.calls, "the external capability must not be called again")
	assert.Empty(t, store.committed)
	assert.Equal(t, []int64{7}, q.completed)
}

func TestRun_StopsOnCancel(t *testing.T) {
	p := NewPool(&fakeQueue{}, newFakeStore(), &fakeTranslator{}, testOpts(), logging.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pool did not stop after cancellation")
	}
}

func TestRetryExhaustion_ErrorStaysInWorker(t *testing.T) {
	// The original caller only ever sees the pending marker; exhaustion
	// must not surface anywhere as an error value.
	store := newFakeStore()
	p := NewPool(&fakeQueue{}, store, &fakeTranslator{failing: 100}, testOpts(), logging.NewNopLogger())

	assert.NotPanics(t, func() { p.Process(context.Background(), testJob()) })
	_, err := store.Lookup(context.Background(), memory.Key{
		SourceText: "Backend", SourceLang: "en", TargetLang: "ru", Context: "Specialization.title",
	})
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
