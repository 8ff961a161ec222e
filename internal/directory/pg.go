package directory

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// Querier is the slice of pgxpool.Pool the repository needs. Kept as an
// interface so tests can substitute a pgxmock pool.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgRepository struct {
	db Querier
}

func NewPgRepository(db Querier) *PgRepository {
	return &PgRepository{db: db}
}

func scanPatient(row pgx.Row) (*PatientRecord, error) {
	var p PatientRecord
	var dob time.Time

	err := row.Scan(
		&p.PatientID,
		&p.Name,
		&dob,
		&p.IsReturning,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	p.DateOfBirth = dob.Format("2006-01-02")
	return &p, nil
}

func (r *PgRepository) FindByName(ctx context.Context, name string) (*PatientRecord, error) {
	row := r.db.QueryRow(ctx, `
		SELECT patient_id, name, date_of_birth, is_returning
		FROM patients
		WHERE lower(name) = lower($1)
		LIMIT 1
	`, name)
	return scanPatient(row)
}
