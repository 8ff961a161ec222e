package notify

import (
	"fmt"

	"github.com/hackgods/clinic-scheduling-assistant/internal/conversation"
)

// ReminderCount is the fixed reminder sequence sent after every
// confirmed booking.
const ReminderCount = 3

func confirmationEmail(evt conversation.BookingConfirmed, intakeFormPath string) EmailMessage {
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your appointment has been confirmed.\n"+
			"Date: %s\n"+
			"Time: %s\n\n"+
			"Please find attached the intake form and return it before your visit.\n\n"+
			"Regards,\nClinic Scheduling",
		evt.Name, evt.AppointmentDate, evt.AppointmentTime)

	return EmailMessage{
		To:             evt.Email,
		ToName:         evt.Name,
		Subject:        "Your Appointment Confirmation & Intake Form",
		Body:           body,
		AttachmentPath: intakeFormPath,
	}
}

var reminderSubjects = map[int]string{
	1: "Appointment Reminder",
	2: "Reminder: Intake Form Pending",
	3: "Final Reminder: Confirm Your Appointment",
}

var reminderBodies = map[int]string{
	1: "Hi %s,\n\nThis is a reminder of your upcoming appointment.\n\nRegards,\nClinic",
	2: "Hi %s,\n\nPlease remember to complete and return your intake form before your visit.\n\nRegards,\nClinic",
	3: "Hi %s,\n\nPlease confirm if you are still attending your appointment. If not, reply with the reason for cancellation.\n\nRegards,\nClinic",
}

func reminderEmail(evt conversation.BookingConfirmed, number int) EmailMessage {
	return EmailMessage{
		To:      evt.Email,
		ToName:  evt.Name,
		Subject: reminderSubjects[number],
		Body:    fmt.Sprintf(reminderBodies[number], evt.Name),
	}
}
