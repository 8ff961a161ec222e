package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hackgods/clinic-scheduling-assistant/internal/calendar"
	"github.com/hackgods/clinic-scheduling-assistant/internal/conversation"
)

type RouterConfig struct {
	Engine   *conversation.Engine
	Sessions *SessionStore
	Calendar calendar.Store
	PgPool   *pgxpool.Pool
	Redis    *redis.Client
	Env      string
	Version  string
	Logger   zerolog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))

	// Health endpoints need the real backing stores; the in-memory
	// demo mode runs without them.
	if cfg.PgPool != nil && cfg.Redis != nil {
		health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
		r.Get("/health/live", health.Liveness)
		r.Get("/health/ready", health.Readiness)
	}

	// Conversation turn interface
	r.Post("/sessions", createSessionHandler(cfg.Sessions))
	r.Get("/sessions/{id}", getSessionHandler(cfg.Sessions))
	r.Post("/sessions/{id}/turns", postTurnHandler(cfg.Engine, cfg.Sessions))

	// Calendar view for the front-end
	r.Get("/slots", listSlotsHandler(cfg.Calendar))

	return r
}
