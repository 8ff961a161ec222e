package conversation

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/hackgods/clinic-scheduling-assistant/internal/directory"
)

const (
	returningDurationMinutes = 30
	newDurationMinutes       = 60
)

// Classification is the outcome of a directory lookup. Known reports
// whether a record was found; the patient type follows the record's
// returning flag, not the mere existence of a record.
type Classification struct {
	PatientType     PatientType
	DurationMinutes int
	Known           bool
}

type Classifier struct {
	directory directory.Repository
	logger    zerolog.Logger
}

func NewClassifier(dir directory.Repository, logger zerolog.Logger) *Classifier {
	return &Classifier{directory: dir, logger: logger}
}

// Classify never fails: an unreachable directory degrades to "new
// patient" so a store outage cannot block booking. That policy is
// deliberate, only the log distinguishes the two cases.
func (c *Classifier) Classify(ctx context.Context, name string) Classification {
	rec, err := c.directory.FindByName(ctx, name)
	if err != nil {
		if !errors.Is(err, directory.ErrPatientNotFound) {
			c.logger.Warn().Err(err).Str("name", name).Msg("directory lookup failed, treating patient as new")
		}
		return Classification{
			PatientType:     PatientNew,
			DurationMinutes: newDurationMinutes,
		}
	}

	if rec.IsReturning {
		return Classification{
			PatientType:     PatientReturning,
			DurationMinutes: returningDurationMinutes,
			Known:           true,
		}
	}

	return Classification{
		PatientType:     PatientNew,
		DurationMinutes: newDurationMinutes,
		Known:           true,
	}
}
