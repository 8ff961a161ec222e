package conversation

import (
	"fmt"
	"strings"

	"github.com/hackgods/clinic-scheduling-assistant/internal/calendar"
)

// Assistant message texts. The input format lines are load-bearing:
// users re-submit in exactly the shape these prompts show.
const (
	msgGreeting       = "Enter your name and DOB: [Name], YYYY-MM-DD"
	msgLookupHint     = "Format: [Name], YYYY-MM-DD"
	msgSchedulingHint = "Format: email@example.com, YYYY-MM-DD, HH:MM"
	msgDateTimeHint   = "Invalid date/time format. Use YYYY-MM-DD, HH:MM."
	msgNoSlots        = "No slots available."
	msgAlreadyBooked  = "Your appointment is already booked."
	msgCalendarDown   = "We are temporarily unable to reach the scheduling calendar. Please try again shortly."
)

func classificationMessage(name string, patientType PatientType, durationMinutes int, known bool) string {
	if !known {
		return fmt.Sprintf(
			"Hi %s, no record found. We'll register you as a new patient (%d minutes).\n\nPlease provide your email, appointment date, and time like: email@example.com, YYYY-MM-DD, HH:MM",
			name, durationMinutes)
	}
	return fmt.Sprintf(
		"Hello %s, you are a %s patient. Your appointment will be %d minutes.\n\nPlease provide your email, appointment date, and time like: email@example.com, YYYY-MM-DD, HH:MM",
		name, patientType, durationMinutes)
}

func scheduledMessage(date, tm string) string {
	return fmt.Sprintf("Appointment scheduled for %s at %s.", date, tm)
}

func suggestionsMessage(suggestions []calendar.Slot) string {
	lines := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		lines = append(lines, fmt.Sprintf("%s at %s", s.Date, s.Time))
	}
	return fmt.Sprintf(
		"Slot unavailable. Next options:\n%s\nPick one (e.g. 2025-09-11, 11:00).",
		strings.Join(lines, "\n"))
}

func confirmedMessage(name string) string {
	return fmt.Sprintf("Appointment confirmed for %s. Intake form and reminders sent via email.", name)
}
