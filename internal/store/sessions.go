package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"brewbyte-backend/internal/model"
)

// GetSession fetches a session by id. A missing session is (nil, nil).
func (s *gormStore) GetSession(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	err := s.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return &session, nil
}

// CreateSession inserts a new session row with empty context.
func (s *gormStore) CreateSession(ctx context.Context, session *model.Session) error {
	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	if session.LastActivity.IsZero() {
		session.LastActivity = now
	}
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("create session %s: %w", session.ID, err)
	}
	return nil
}

// UpdateSession applies a partial update and refreshes last_activity, then
// returns the updated row. An unknown id returns gorm.ErrRecordNotFound.
// The context and user-info blobs are marshalled by hand: map-based Updates
// bypass the model's json serializer, so struct values must not reach the
// driver directly.
func (s *gormStore) UpdateSession(ctx context.Context, id string, updates SessionUpdate) (*model.Session, error) {
	values := map[string]any{"last_activity": time.Now().UTC()}
	if updates.Context != nil {
		raw, err := json.Marshal(updates.Context)
		if err != nil {
			return nil, fmt.Errorf("marshal session %s context: %w", id, err)
		}
		values["context"] = string(raw)
	}
	if updates.UserInfo != nil {
		raw, err := json.Marshal(updates.UserInfo)
		if err != nil {
			return nil, fmt.Errorf("marshal session %s user info: %w", id, err)
		}
		values["user_info"] = string(raw)
	}
	if updates.UserID != nil {
		values["user_id"] = *updates.UserID
	}

	res := s.db.WithContext(ctx).Model(&model.Session{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return nil, fmt.Errorf("update session %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.GetSession(ctx, id)
}

// DeleteSession removes a session, reporting whether a row existed.
func (s *gormStore) DeleteSession(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&model.Session{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("delete session %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ActiveSessions lists sessions whose last activity falls within the trailing
// window, most recently active first.
func (s *gormStore) ActiveSessions(ctx context.Context, now time.Time, window time.Duration) ([]ActiveSession, error) {
	var sessions []model.Session
	err := s.db.WithContext(ctx).
		Where("last_activity >= ?", now.Add(-window)).
		Order("last_activity DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("active sessions: %w", err)
	}

	result := make([]ActiveSession, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, ActiveSession{
			ID:              sess.ID,
			UserID:          sess.UserID,
			LastActivity:    sess.LastActivity,
			InactiveMinutes: int(now.Sub(sess.LastActivity).Minutes()),
		})
	}
	return result, nil
}

// SessionByUser finds the user's most recently active session; (nil, nil)
// when they have none.
func (s *gormStore) SessionByUser(ctx context.Context, userID string) (*model.Session, error) {
	var session model.Session
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_activity DESC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session for user %s: %w", userID, err)
	}
	return &session, nil
}

// DeleteSessionsInactiveSince removes every session whose last activity
// predates the cutoff, returning how many rows were deleted.
func (s *gormStore) DeleteSessionsInactiveSince(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("last_activity < ?", cutoff).Delete(&model.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("cleanup sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
