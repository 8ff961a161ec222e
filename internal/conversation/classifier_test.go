package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/hackgods/clinic-scheduling-assistant/internal/directory"
)

func TestClassifyReturningPatient(t *testing.T) {
	dir := directory.NewMemoryRepository(directory.PatientRecord{
		PatientID: "P001", Name: "Alice Smith", IsReturning: true,
	})
	c := NewClassifier(dir, zerolog.Nop())

	got := c.Classify(context.Background(), "alice smith")
	assert.Equal(t, PatientReturning, got.PatientType)
	assert.Equal(t, 30, got.DurationMinutes)
	assert.True(t, got.Known)
}

func TestClassifyKnownButNotReturning(t *testing.T) {
	dir := directory.NewMemoryRepository(directory.PatientRecord{
		PatientID: "P002", Name: "Carol White", IsReturning: false,
	})
	c := NewClassifier(dir, zerolog.Nop())

	// Found with is_returning false still books the new-patient slot.
	got := c.Classify(context.Background(), "Carol White")
	assert.Equal(t, PatientNew, got.PatientType)
	assert.Equal(t, 60, got.DurationMinutes)
	assert.True(t, got.Known)
}

func TestClassifyUnknownPatient(t *testing.T) {
	c := NewClassifier(directory.NewMemoryRepository(), zerolog.Nop())

	got := c.Classify(context.Background(), "Bob Jones")
	assert.Equal(t, PatientNew, got.PatientType)
	assert.Equal(t, 60, got.DurationMinutes)
	assert.False(t, got.Known)
}

type downDirectory struct{}

func (downDirectory) FindByName(ctx context.Context, name string) (*directory.PatientRecord, error) {
	return nil, errors.New("directory unreachable")
}

func TestClassifyDegradesWhenDirectoryDown(t *testing.T) {
	c := NewClassifier(downDirectory{}, zerolog.Nop())

	got := c.Classify(context.Background(), "Alice Smith")
	assert.Equal(t, PatientNew, got.PatientType)
	assert.Equal(t, 60, got.DurationMinutes)
	assert.False(t, got.Known)
}
