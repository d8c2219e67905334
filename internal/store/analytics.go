package store

import (
	"context"
	"fmt"
	"time"

	"brewbyte-backend/internal/model"
)

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// TodaySales aggregates order count, sales sum, and average order value for
// the calendar day containing now.
func (s *gormStore) TodaySales(ctx context.Context, now time.Time) (SalesSummary, error) {
	dayStart := startOfDay(now)

	var summary SalesSummary
	err := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("COUNT(*) AS order_count, COALESCE(SUM(total), 0) AS total_sales, COALESCE(AVG(total), 0) AS average_order_value").
		Where("created_at >= ? AND created_at < ?", dayStart, dayStart.Add(24*time.Hour)).
		Scan(&summary).Error
	if err != nil {
		return SalesSummary{}, fmt.Errorf("today's sales: %w", err)
	}
	return summary, nil
}

// WeeklySales returns the trailing seven calendar days, oldest first, with
// zero-filled entries for days that saw no orders. Daily bucketing happens in
// Go so the query stays portable across sqlite and postgres.
func (s *gormStore) WeeklySales(ctx context.Context, now time.Time) ([]DailySales, error) {
	weekStart := startOfDay(now).AddDate(0, 0, -6)

	var orders []model.Order
	err := s.db.WithContext(ctx).
		Select("created_at", "total").
		Where("created_at >= ?", weekStart).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("weekly sales: %w", err)
	}

	byDay := make(map[string]*DailySales, 7)
	result := make([]DailySales, 7)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		result[i] = DailySales{
			Date:  day.Format("2006-01-02"),
			Label: day.Format("Mon"),
		}
		byDay[result[i].Date] = &result[i]
	}

	for _, o := range orders {
		key := o.CreatedAt.In(now.Location()).Format("2006-01-02")
		if entry, ok := byDay[key]; ok {
			entry.OrderCount++
			entry.TotalSales += o.Total
		}
	}
	return result, nil
}

// PopularItems ranks items by how many orders they appeared on.
func (s *gormStore) PopularItems(ctx context.Context, limit int) ([]PopularItem, error) {
	var items []PopularItem
	err := s.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Select("item_name AS name, category, subcategory, AVG(price) AS price, COUNT(*) AS times_ordered, SUM(quantity) AS total_quantity").
		Group("item_name").Group("category").Group("subcategory").
		Order("times_ordered DESC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("popular items: %w", err)
	}
	return items, nil
}

// RevenueByCategory sums line revenue per item category.
func (s *gormStore) RevenueByCategory(ctx context.Context) ([]CategoryRevenue, error) {
	var rows []CategoryRevenue
	err := s.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Select("category, SUM(price * quantity) AS revenue, COUNT(*) AS items_sold").
		Group("category").
		Order("revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("revenue by category: %w", err)
	}
	return rows, nil
}

// FavoriteItems returns a user's most-ordered (item, size, temperature)
// tuples.
func (s *gormStore) FavoriteItems(ctx context.Context, userID string, limit int) ([]FavoriteItem, error) {
	var favorites []FavoriteItem
	err := s.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Select("item_name AS name, category, subcategory, size, temperature, COUNT(*) AS order_count").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ?", userID).
		Group("item_name").Group("category").Group("subcategory").Group("size").Group("temperature").
		Order("order_count DESC").
		Limit(limit).
		Scan(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("favorites for user %s: %w", userID, err)
	}
	return favorites, nil
}

// TrendingToday returns the items ordered most often today, by anyone.
func (s *gormStore) TrendingToday(ctx context.Context, now time.Time, limit int) ([]TrendingItem, error) {
	dayStart := startOfDay(now)

	var trending []TrendingItem
	err := s.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Select("item_name AS name, category, COUNT(*) AS orders_today").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.created_at < ?", dayStart, dayStart.Add(24*time.Hour)).
		Group("item_name").Group("category").
		Order("orders_today DESC").
		Limit(limit).
		Scan(&trending).Error
	if err != nil {
		return nil, fmt.Errorf("trending items: %w", err)
	}
	return trending, nil
}
