package api

import (
	"sync"

	"github.com/google/uuid"

	"github.com/hackgods/clinic-scheduling-assistant/internal/conversation"
)

// Session pairs a conversation context with its own mutex: turns within
// a session run strictly one at a time, while separate sessions only
// contend at the calendar.
type Session struct {
	ID    uuid.UUID
	mu    sync.Mutex
	convo *conversation.Context
}

// WithTurn runs fn holding the session's turn lock.
func (s *Session) WithTurn(fn func(convo *conversation.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.convo)
}

// Snapshot returns a copy of the context safe to serialize.
func (s *Session) Snapshot() conversation.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := *s.convo
	snap.Messages = append([]conversation.Message(nil), s.convo.Messages...)
	return snap
}

// SessionStore keeps live sessions in memory. Contexts are not
// persisted beyond the appointment log; a restart simply ends them.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[uuid.UUID]*Session)}
}

func (st *SessionStore) Create() *Session {
	s := &Session{
		ID:    uuid.New(),
		convo: conversation.NewContext(),
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	return s
}

func (st *SessionStore) Get(id uuid.UUID) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}
