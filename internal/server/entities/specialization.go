package entities

import (
	"database/sql"

	"github.com/NaFo61/BervinovAcademy/internal/dbx"
	"github.com/NaFo61/BervinovAcademy/internal/server/models"
	"github.com/NaFo61/BervinovAcademy/internal/server/registry"
)

var recordColumns = []string{
	"title", "title_ru", "title_en",
	"description", "description_ru", "description_en",
}

// NewSpecializationStore builds the record store for the specializations table.
func NewSpecializationStore(db dbx.DBTX) *PostgresStore {
	return newPostgresStore(db, mapper{
		table:   "specializations",
		columns: recordColumns,
		scan: func(rows *sql.Rows) (registry.Record, error) {
			var item models.Specialization
			err := rows.Scan(
				&item.RecordID,
				&item.Title, &item.TitleRU, &item.TitleEN,
				&item.Description, &item.DescriptionRU, &item.DescriptionEN,
			)
			if err != nil {
				return nil, err
			}
			return &item, nil
		},
	})
}

// NewCourseStore builds the record store for the courses table.
func NewCourseStore(db dbx.DBTX) *PostgresStore {
	return newPostgresStore(db, mapper{
		table:   "courses",
		columns: recordColumns,
		scan: func(rows *sql.Rows) (registry.Record, error) {
			var item models.Course
			err := rows.Scan(
				&item.RecordID,
				&item.Title, &item.TitleRU, &item.TitleEN,
				&item.Description, &item.DescriptionRU, &item.DescriptionEN,
			)
			if err != nil {
				return nil, err
			}
			return &item, nil
		},
	})
}
