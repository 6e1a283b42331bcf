package entities

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/NaFo61/BervinovAcademy/internal/server/models"
	"github.com/NaFo61/BervinovAcademy/internal/server/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	saved [][]string
}

func (r *recordingObserver) RecordSaved(ctx context.Context, rec registry.Record, fields []string) {
	r.saved = append(r.saved, fields)
}

func testSpecialization() *models.Specialization {
	return &models.Specialization{
		RecordID: "rec-1",
		Title:    "Backend",
	}
}

func TestSave_NarrowWriteTouchesOnlyNamedFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE specializations SET title_en = \$1, updated_at = now\(\) WHERE id = \$2`).
		WithArgs("Backend Development", "rec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewSpecializationStore(db)
	rec := testSpecialization()
	rec.TitleEN = "Backend Development"

	require.NoError(t, store.Save(context.Background(), rec, "title_en"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_RejectsUnknownField(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewSpecializationStore(db)
	err = store.Save(context.Background(), testSpecialization(), "title_en; DROP TABLE specializations")
	assert.Error(t, err)
}

func TestSave_FullUpsertAssignsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO specializations").
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewSpecializationStore(db)
	rec := &models.Specialization{Title: "Backend"}

	require.NoError(t, store.Save(context.Background(), rec))
	assert.NotEmpty(t, rec.RecordID)
}

func TestSave_NotifiesObserversWithTouchedFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE specializations").
		WillReturnResult(sqlmock.NewResult(0, 1))

	obs := &recordingObserver{}
	store := NewSpecializationStore(db)
	store.Register(obs)

	// No enclosing transaction: notification runs immediately.
	require.NoError(t, store.Save(context.Background(), testSpecialization(), "title"))
	require.Len(t, obs.saved, 1)
	assert.Equal(t, []string{"title"}, obs.saved[0])
}

func TestFindByField_CaseInsensitive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "title", "title_ru", "title_en", "description", "description_ru", "description_en",
	}).AddRow("rec-1", "Backend", "", "", "", "", "")

	mock.ExpectQuery(`SELECT (.+) FROM specializations WHERE lower\(title\) = lower\(\$1\)`).
		WithArgs("backend").
		WillReturnRows(rows)

	store := NewSpecializationStore(db)
	recs, err := store.FindByField(context.Background(), "title", "backend")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "rec-1", recs[0].ID())
}

func TestFindByField_RejectsUnknownField(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewSpecializationStore(db)
	_, err = store.FindByField(context.Background(), "slug", "x")
	assert.Error(t, err)
}
