package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"brewbyte-backend/internal/model"
)

// ErrInvalidTransition is returned when an order status update would move
// the order backwards.
var ErrInvalidTransition = errors.New("invalid order status transition")

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	// Users
	UpsertUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	FindUserByName(ctx context.Context, name string) (*model.User, error)

	// Orders
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) error
	ActiveOrders(ctx context.Context) ([]ActiveOrder, error)
	UserOrderHistory(ctx context.Context, userID string, limit int) ([]model.Order, error)

	// Analytics
	TodaySales(ctx context.Context, now time.Time) (SalesSummary, error)
	WeeklySales(ctx context.Context, now time.Time) ([]DailySales, error)
	PopularItems(ctx context.Context, limit int) ([]PopularItem, error)
	RevenueByCategory(ctx context.Context) ([]CategoryRevenue, error)
	FavoriteItems(ctx context.Context, userID string, limit int) ([]FavoriteItem, error)
	TrendingToday(ctx context.Context, now time.Time, limit int) ([]TrendingItem, error)

	// Sessions
	GetSession(ctx context.Context, id string) (*model.Session, error)
	CreateSession(ctx context.Context, session *model.Session) error
	UpdateSession(ctx context.Context, id string, updates SessionUpdate) (*model.Session, error)
	DeleteSession(ctx context.Context, id string) (bool, error)
	ActiveSessions(ctx context.Context, now time.Time, window time.Duration) ([]ActiveSession, error)
	SessionByUser(ctx context.Context, userID string) (*model.Session, error)
	DeleteSessionsInactiveSince(ctx context.Context, cutoff time.Time) (int64, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying handle for handlers that run their own queries.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}
