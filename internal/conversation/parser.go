package conversation

import (
	"strings"
	"time"
)

// LookupInput is a parsed "Name, YYYY-MM-DD" turn.
type LookupInput struct {
	Name        string
	DateOfBirth string
}

// SchedulingInput is a parsed "email, YYYY-MM-DD, HH:MM" turn.
type SchedulingInput struct {
	Email string
	Date  string
	Time  string
}

// Rejection explains why a turn was not accepted at the current stage.
// The hint is shown to the user verbatim; the session stays put.
type Rejection struct {
	Hint string
}

// ParseLookup validates a lookup-stage turn: exactly two comma-separated
// fields, a non-empty name and a calendar date of birth.
func ParseLookup(raw string) (LookupInput, *Rejection) {
	parts := splitFields(raw)
	if len(parts) != 2 {
		return LookupInput{}, &Rejection{Hint: msgLookupHint}
	}

	name, dob := parts[0], parts[1]
	if name == "" {
		return LookupInput{}, &Rejection{Hint: msgLookupHint}
	}

	parsed, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return LookupInput{}, &Rejection{Hint: msgLookupHint}
	}

	return LookupInput{
		Name:        name,
		DateOfBirth: parsed.Format("2006-01-02"),
	}, nil
}

// ParseScheduling validates a scheduling-stage turn: email, date and
// 24-hour time. The email is not checked beyond being non-empty; extra
// trailing fields are ignored.
func ParseScheduling(raw string) (SchedulingInput, *Rejection) {
	parts := splitFields(raw)
	if len(parts) < 3 {
		return SchedulingInput{}, &Rejection{Hint: msgSchedulingHint}
	}

	email, dateStr, timeStr := parts[0], parts[1], parts[2]
	if email == "" {
		return SchedulingInput{}, &Rejection{Hint: msgSchedulingHint}
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return SchedulingInput{}, &Rejection{Hint: msgDateTimeHint}
	}

	tm, err := time.Parse("15:04", timeStr)
	if err != nil {
		return SchedulingInput{}, &Rejection{Hint: msgDateTimeHint}
	}

	// Normalized so "9:00" matches the calendar's "09:00".
	return SchedulingInput{
		Email: email,
		Date:  date.Format("2006-01-02"),
		Time:  tm.Format("15:04"),
	}, nil
}

func splitFields(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
