package store

import (
	"time"

	"brewbyte-backend/internal/model"
)

// ActiveOrder is an in-flight order together with its customer's name.
type ActiveOrder struct {
	model.Order
	CustomerName string `json:"customer_name"`
}

// SalesSummary aggregates a single day's orders.
type SalesSummary struct {
	OrderCount        int64   `json:"order_count"`
	TotalSales        float64 `json:"total_sales"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// DailySales is one zero-filled entry of the trailing-week series.
type DailySales struct {
	Date       string  `json:"date"`
	Label      string  `json:"label"`
	OrderCount int64   `json:"order_count"`
	TotalSales float64 `json:"total_sales"`
}

// PopularItem ranks a catalog item by how often it has been ordered.
type PopularItem struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Subcategory   string  `json:"subcategory"`
	Price         float64 `json:"price"`
	TimesOrdered  int64   `json:"times_ordered"`
	TotalQuantity int64   `json:"total_quantity"`
}

// CategoryRevenue is the revenue contribution of one item category.
type CategoryRevenue struct {
	Category  string  `json:"category"`
	Revenue   float64 `json:"revenue"`
	ItemsSold int64   `json:"items_sold"`
}

// FavoriteItem is a (item, size, temperature) tuple a user keeps coming back
// to.
type FavoriteItem struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Size        string `json:"size"`
	Temperature string `json:"temperature"`
	OrderCount  int64  `json:"order_count"`
}

// TrendingItem is an item ordered by anyone today.
type TrendingItem struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	OrdersToday int64  `json:"orders_today"`
}

// ActiveSession is a session row decorated with how long it has been idle.
type ActiveSession struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	LastActivity    time.Time `json:"last_activity"`
	InactiveMinutes int       `json:"inactive_minutes"`
}

// SessionUpdate is a partial session mutation. Nil fields are left untouched;
// last_activity is always refreshed.
type SessionUpdate struct {
	Context  *model.SessionContext
	UserInfo *model.SessionUserInfo
	UserID   *string
}
