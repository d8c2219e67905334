package model

import (
	"regexp"
	"strings"
	"time"
)

// User represents a café customer. The ID is a stable slug derived from the
// name, so re-registering the same name resolves to the same row.
type User struct {
	ID          string `gorm:"primaryKey;size:128"`
	Name        string `gorm:"size:256;not null"`
	Phone       string `gorm:"size:32"`
	Preferences string // free-form JSON blob supplied by the agent
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Associations
	Orders []Order `gorm:"foreignKey:UserID"`
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]`)

// UserIDForName derives the deterministic user id for a display name.
func UserIDForName(name string) string {
	normalized := nonAlnumRe.ReplaceAllString(strings.ToLower(name), "_")
	return "user_" + normalized
}
