// Package session layers conversational context on top of the persistent
// session rows and owns the periodic inactivity sweep.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"brewbyte-backend/config"
	"brewbyte-backend/internal/model"
	"brewbyte-backend/internal/store"
)

// ContextSnapshot is what the suggestion generator sees for a session: the
// stored context plus the bound user info and the session's age in minutes.
type ContextSnapshot struct {
	model.SessionContext
	UserInfo   model.SessionUserInfo `json:"userInfo"`
	SessionAge int                   `json:"sessionAge"`
}

// Manager provides idempotent session access and background cleanup.
type Manager struct {
	store store.Store
	cfg   config.SessionConfig
}

// NewManager creates a session manager backed by the given store.
func NewManager(s store.Store, cfg config.SessionConfig) *Manager {
	return &Manager{store: s, cfg: cfg}
}

// GenerateID produces a fresh opaque session identifier.
func (m *Manager) GenerateID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the platform entropy source is broken.
		panic(fmt.Sprintf("session id generation: %v", err))
	}
	return "session_" + hex.EncodeToString(buf)
}

// GetOrCreate returns the existing session unchanged, or creates one with
// empty context. Safe to call repeatedly with the same id.
func (m *Manager) GetOrCreate(ctx context.Context, id, userID string) (*model.Session, error) {
	session, err := m.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	session = &model.Session{ID: id, UserID: userID}
	if err := m.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateContext shallow-merges the patch into the session's context and
// refreshes its last activity, creating the session first if absent.
func (m *Manager) UpdateContext(ctx context.Context, id string, patch model.SessionContext) (*model.Session, error) {
	session, err := m.GetOrCreate(ctx, id, "")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	patch.LastUpdated = &now
	merged := session.Context.Merge(patch)

	return m.store.UpdateSession(ctx, id, store.SessionUpdate{Context: &merged})
}

// SetUserInfo binds a user to the session and stores auxiliary info about
// them.
func (m *Manager) SetUserInfo(ctx context.Context, id, userID string, info model.SessionUserInfo) (*model.Session, error) {
	if _, err := m.GetOrCreate(ctx, id, userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	info.LastUpdated = &now

	return m.store.UpdateSession(ctx, id, store.SessionUpdate{
		UserID:   &userID,
		UserInfo: &info,
	})
}

// Snapshot returns the session's context for suggestion generation. A missing
// session yields an empty snapshot, never an error; a failing read is logged
// and degraded the same way.
func (m *Manager) Snapshot(ctx context.Context, id string) ContextSnapshot {
	session, err := m.store.GetSession(ctx, id)
	if err != nil {
		log.Printf("Error reading session %s context: %v", id, err)
		return ContextSnapshot{}
	}
	if session == nil {
		return ContextSnapshot{}
	}
	return ContextSnapshot{
		SessionContext: session.Context,
		UserInfo:       session.UserInfo,
		SessionAge:     int(time.Since(session.CreatedAt).Minutes()),
	}
}

// Clear deletes a session on an explicit end-of-session signal.
func (m *Manager) Clear(ctx context.Context, id string) (bool, error) {
	ok, err := m.store.DeleteSession(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return ok, err
}

// ActiveSessions lists sessions active within the trailing window, for
// monitoring.
func (m *Manager) ActiveSessions(ctx context.Context, window time.Duration) ([]store.ActiveSession, error) {
	return m.store.ActiveSessions(ctx, time.Now().UTC(), window)
}

// CleanupInactive deletes every session idle past the configured threshold.
func (m *Manager) CleanupInactive(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-m.cfg.MaxIdle)
	deleted, err := m.store.DeleteSessionsInactiveSince(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		log.Printf("Cleaned up %d inactive sessions", deleted)
	}
	return deleted, nil
}

// Run executes the sweep loop: once shortly after startup, then on a fixed
// interval until the context is cancelled. Deletions are best-effort
// housekeeping; a session read racing a sweep simply recreates the row.
func (m *Manager) Run(ctx context.Context) {
	log.Println("Starting session sweeper...")

	select {
	case <-ctx.Done():
		return
	case <-time.After(m.cfg.StartupSweepDelay):
	}
	if _, err := m.CleanupInactive(ctx); err != nil {
		log.Printf("Error cleaning up sessions: %v", err)
	}

	timer := time.NewTimer(m.cfg.SweepInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Session sweeper shutting down.")
			return
		case <-timer.C:
			if _, err := m.CleanupInactive(ctx); err != nil {
				log.Printf("Error cleaning up sessions: %v", err)
			}
			timer.Reset(m.cfg.SweepInterval)
		}
	}
}
