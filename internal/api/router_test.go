package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackgods/clinic-scheduling-assistant/internal/booking"
	"github.com/hackgods/clinic-scheduling-assistant/internal/calendar"
	"github.com/hackgods/clinic-scheduling-assistant/internal/conversation"
	"github.com/hackgods/clinic-scheduling-assistant/internal/directory"
	redisclient "github.com/hackgods/clinic-scheduling-assistant/internal/redis"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	dir := directory.NewMemoryRepository(directory.PatientRecord{
		PatientID:   "P001",
		Name:        "Alice Smith",
		DateOfBirth: "1990-01-01",
		IsReturning: true,
	})
	store := calendar.NewMemoryStore(
		calendar.Slot{Date: "2025-09-11", Time: "10:00", Available: true},
		calendar.Slot{Date: "2025-09-11", Time: "11:00", Available: true},
	)
	locker := redisclient.NewRedisSlotLocker(client, 5*time.Second)
	negotiator := booking.NewNegotiator(store, locker, 3, zerolog.Nop())
	engine := conversation.NewEngine(
		conversation.NewClassifier(dir, zerolog.Nop()),
		negotiator,
		booking.NewMemoryLog(),
		nil,
		zerolog.Nop(),
	)

	router := NewRouter(RouterConfig{
		Engine:   engine,
		Sessions: NewSessionStore(),
		Calendar: store,
		Env:      "test",
		Version:  "test",
		Logger:   zerolog.Nop(),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func createSession(t *testing.T, srv *httptest.Server) SessionResponse {
	t.Helper()

	resp, err := http.Post(srv.URL+"/sessions", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func postTurn(t *testing.T, srv *httptest.Server, sessionID, text string) (int, SessionResponse) {
	t.Helper()

	body, err := json.Marshal(TurnRequest{Text: text})
	require.NoError(t, err)

	resp, err := http.Post(
		fmt.Sprintf("%s/sessions/%s/turns", srv.URL, sessionID),
		"application/json",
		bytes.NewReader(body),
	)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out SessionResponse
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestCreateSessionGreets(t *testing.T) {
	srv := newTestServer(t)

	sess := createSession(t, srv)
	assert.Equal(t, "lookup", sess.Stage)
	assert.Contains(t, sess.Reply, "[Name], YYYY-MM-DD")
}

func TestFullBookingFlow(t *testing.T) {
	srv := newTestServer(t)
	sess := createSession(t, srv)

	status, out := postTurn(t, srv, sess.ID, "Alice Smith, 1990-01-01")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "scheduling", out.Stage)
	assert.Contains(t, out.Reply, "returning patient")

	status, out = postTurn(t, srv, sess.ID, "alice@x.com, 2025-09-11, 10:00")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "confirmed", out.Stage)
	assert.True(t, out.IsBooked)
	assert.Contains(t, out.Reply, "Appointment confirmed for Alice Smith")
}

func TestTurnOnUnknownSessionIs404(t *testing.T) {
	srv := newTestServer(t)

	status, _ := postTurn(t, srv, "00000000-0000-0000-0000-000000000000", "hello")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTurnWithBadSessionIDIs400(t *testing.T) {
	srv := newTestServer(t)

	status, _ := postTurn(t, srv, "not-a-uuid", "hello")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestEmptyTurnIs400(t *testing.T) {
	srv := newTestServer(t)
	sess := createSession(t, srv)

	status, _ := postTurn(t, srv, sess.ID, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestListSlots(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/slots?limit=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var slots []SlotResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&slots))
	require.Len(t, slots, 1)
	assert.Equal(t, "2025-09-11", slots[0].Date)
	assert.Equal(t, "10:00", slots[0].Time)
}

func TestGetSessionReturnsTranscript(t *testing.T) {
	srv := newTestServer(t)
	sess := createSession(t, srv)
	postTurn(t, srv, sess.ID, "Alice Smith, 1990-01-01")

	resp, err := http.Get(srv.URL + "/sessions/" + sess.ID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	// Greeting, user turn, classification reply.
	assert.Len(t, out.Messages, 3)
}
