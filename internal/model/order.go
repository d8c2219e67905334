package model

import "time"

// Order statuses. Transitions only move forward; completed and cancelled
// orders are never reopened.
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// statusRank orders the forward progression of an order.
var statusRank = map[string]int{
	StatusPending:   0,
	StatusPreparing: 1,
	StatusReady:     2,
	StatusCompleted: 3,
	StatusCancelled: 3,
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
// Equal statuses are allowed so repeated updates stay idempotent.
func CanTransition(from, to string) bool {
	if from == StatusCancelled && to != StatusCancelled {
		return false
	}
	return statusRank[to] >= statusRank[from]
}

// Order is a submitted order header.
type Order struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string  `gorm:"index;size:128;not null" json:"user_id"`
	Total     float64 `gorm:"not null" json:"total"`
	Status    string  `gorm:"index;size:16;not null;default:pending" json:"status"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// OrderItem is a single line of an order. Prices are captured at order time
// and never live-updated from the catalog.
type OrderItem struct {
	ID             int64    `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID        int64    `gorm:"index;not null" json:"-"`
	ItemID         string   `gorm:"size:64" json:"item_id"`
	ItemName       string   `gorm:"size:256;not null" json:"name"`
	Category       string   `gorm:"size:64" json:"category"`
	Subcategory    string   `gorm:"size:64" json:"subcategory"`
	Size           string   `gorm:"size:32" json:"size"`
	Temperature    string   `gorm:"size:32" json:"temperature"`
	Price          float64  `gorm:"not null" json:"price"`
	Quantity       int      `gorm:"not null;default:1" json:"quantity"`
	Customizations []string `gorm:"serializer:json" json:"customizations"`
}
