package api

import (
	"github.com/hackgods/clinic-scheduling-assistant/internal/conversation"
)

type TurnRequest struct {
	Text string `json:"text"`
}

type SessionResponse struct {
	ID       string                 `json:"id"`
	Stage    string                 `json:"stage"`
	IsBooked bool                   `json:"is_booked"`
	Reply    string                 `json:"reply,omitempty"`
	Messages []conversation.Message `json:"messages"`
}

type SlotResponse struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
