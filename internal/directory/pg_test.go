package directory

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgFindByName(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	dob := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT patient_id, name, date_of_birth, is_returning`).
		WithArgs("Alice Smith").
		WillReturnRows(pgxmock.NewRows([]string{"patient_id", "name", "date_of_birth", "is_returning"}).
			AddRow("P001", "Alice Smith", dob, true))

	repo := NewPgRepository(mock)
	rec, err := repo.FindByName(context.Background(), "Alice Smith")
	require.NoError(t, err)

	assert.Equal(t, "P001", rec.PatientID)
	assert.Equal(t, "1990-01-01", rec.DateOfBirth)
	assert.True(t, rec.IsReturning)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgFindByNameNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT patient_id, name, date_of_birth, is_returning`).
		WithArgs("Bob Jones").
		WillReturnError(pgx.ErrNoRows)

	repo := NewPgRepository(mock)
	_, err = repo.FindByName(context.Background(), "Bob Jones")
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestMemoryFindByNameCaseInsensitive(t *testing.T) {
	repo := NewMemoryRepository(PatientRecord{
		PatientID:   "P001",
		Name:        "Alice Smith",
		DateOfBirth: "1990-01-01",
		IsReturning: true,
	})

	rec, err := repo.FindByName(context.Background(), "alice smith")
	require.NoError(t, err)
	assert.Equal(t, "P001", rec.PatientID)

	_, err = repo.FindByName(context.Background(), "Nobody")
	assert.ErrorIs(t, err, ErrPatientNotFound)
}
