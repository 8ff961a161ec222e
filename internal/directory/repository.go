package directory

import (
	"context"
	"errors"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
)

// PatientRecord is the identity stub kept in the patient directory.
// The conversation core only reads these; seeding writes them once.
type PatientRecord struct {
	PatientID   string
	Name        string
	DateOfBirth string // YYYY-MM-DD
	IsReturning bool
}

// Repository contains all directory interactions needed by the classifier.
type Repository interface {
	// FindByName matches case-insensitively and returns
	// ErrPatientNotFound when no record matches.
	FindByName(ctx context.Context, name string) (*PatientRecord, error)
}
