package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"brewbyte-backend/internal/memory"
	"brewbyte-backend/internal/notify"
	"brewbyte-backend/internal/realtime"
	"brewbyte-backend/internal/session"
	"brewbyte-backend/internal/store"
	"brewbyte-backend/internal/suggest"
)

// Handler holds shared dependencies for API handlers. memory, pool, and
// webpush may be nil when the corresponding feature is not configured.
type Handler struct {
	store     store.Store
	sessions  *session.Manager
	generator *suggest.Generator
	realtime  *realtime.Client
	memory    *memory.Client
	pool      *notify.WorkerPool
	webpush   *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(
	s store.Store,
	sessions *session.Manager,
	generator *suggest.Generator,
	rt *realtime.Client,
	mem *memory.Client,
	pool *notify.WorkerPool,
	webpushOptions *webpush.Options,
) *Handler {
	return &Handler{
		store:     s,
		sessions:  sessions,
		generator: generator,
		realtime:  rt,
		memory:    mem,
		pool:      pool,
		webpush:   webpushOptions,
	}
}
