package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"brewbyte-backend/internal/model"
)

// UpsertUser inserts the user or, when the id already exists, refreshes its
// mutable fields. Users are never deleted.
func (s *gormStore) UpsertUser(ctx context.Context, user *model.User) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "preferences", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", user.ID, err)
	}
	return nil
}

// GetUser fetches a user by id. A missing user is (nil, nil), not an error.
func (s *gormStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &user, nil
}

// FindUserByName looks a user up by display name: exact case-insensitive
// match first, then a substring match. A miss is (nil, nil).
func (s *gormStore) FindUserByName(ctx context.Context, name string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.db.WithContext(ctx).
			Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").
			First(&user).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by name %q: %w", name, err)
	}
	return &user, nil
}
