package conversation

// Stage is the position of a session in the booking flow. It only ever
// moves forward; a rejected input keeps the session where it is.
type Stage string

const (
	StageLookup     Stage = "lookup"
	StageScheduling Stage = "scheduling"
	StageConfirmed  Stage = "confirmed"
)

type PatientType string

const (
	PatientNew       PatientType = "new"
	PatientReturning PatientType = "returning"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Context is the state a booking session accumulates across turns.
// Only the engine mutates it; the transcript is append-only.
type Context struct {
	Name                string      `json:"name,omitempty"`
	DateOfBirth         string      `json:"date_of_birth,omitempty"`
	PatientType         PatientType `json:"patient_type,omitempty"`
	AppointmentDuration int         `json:"appointment_duration,omitempty"`
	Email               string      `json:"email,omitempty"`
	AppointmentDate     string      `json:"appointment_date,omitempty"`
	AppointmentTime     string      `json:"appointment_time,omitempty"`
	IsBooked            bool        `json:"is_booked"`
	Stage               Stage       `json:"stage"`
	Messages            []Message   `json:"messages"`
}

// NewContext starts a session at the lookup stage with the opening
// assistant prompt already in the transcript.
func NewContext() *Context {
	return &Context{
		Stage: StageLookup,
		Messages: []Message{
			{Role: RoleAssistant, Content: msgGreeting},
		},
	}
}

func (c *Context) append(role Role, content string) {
	c.Messages = append(c.Messages, Message{Role: role, Content: content})
}

// LastMessage returns the newest transcript entry, for rendering.
func (c *Context) LastMessage() Message {
	if len(c.Messages) == 0 {
		return Message{}
	}
	return c.Messages[len(c.Messages)-1]
}
