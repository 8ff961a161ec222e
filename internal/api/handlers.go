package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hackgods/clinic-scheduling-assistant/internal/calendar"
	"github.com/hackgods/clinic-scheduling-assistant/internal/conversation"
)

func sessionResponse(s *Session) SessionResponse {
	snap := s.Snapshot()
	return SessionResponse{
		ID:       s.ID.String(),
		Stage:    string(snap.Stage),
		IsBooked: snap.IsBooked,
		Reply:    snap.Messages[len(snap.Messages)-1].Content,
		Messages: snap.Messages,
	}
}

func createSessionHandler(sessions *SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessions.Create()
		writeJSON(w, http.StatusCreated, sessionResponse(s))
	}
}

func getSessionHandler(sessions *SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := lookupSession(w, r, sessions)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse(s))
	}
}

func postTurnHandler(engine *conversation.Engine, sessions *SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := lookupSession(w, r, sessions)
		if !ok {
			return
		}

		var req TurnRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if req.Text == "" {
			writeError(w, http.StatusBadRequest, "empty_turn", "text must not be empty")
			return
		}

		s.WithTurn(func(convo *conversation.Context) {
			engine.HandleTurn(r.Context(), convo, req.Text)
		})

		writeJSON(w, http.StatusOK, sessionResponse(s))
	}
}

func listSlotsHandler(store calendar.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 20
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
				return
			}
			if n > 100 {
				n = 100
			}
			limit = n
		}

		slots, err := store.ListAvailable(r.Context(), limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", "could not list slots")
			return
		}

		resp := make([]SlotResponse, 0, len(slots))
		for _, s := range slots {
			resp = append(resp, SlotResponse{Date: s.Date, Time: s.Time})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func lookupSession(w http.ResponseWriter, r *http.Request, sessions *SessionStore) (*Session, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_session_id", "id must be a valid UUID")
		return nil, false
	}

	s, ok := sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session_not_found", "no such session")
		return nil, false
	}
	return s, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}
