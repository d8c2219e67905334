package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"brewbyte-backend/internal/model"
)

var activeStatuses = []string{model.StatusPending, model.StatusPreparing, model.StatusReady}

// CreateOrder persists an order header together with all of its line items in
// a single transaction; on failure the caller may retry the whole order.
func (s *gormStore) CreateOrder(ctx context.Context, order *model.Order) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		return fmt.Errorf("create order for user %s: %w", order.UserID, err)
	}
	return nil
}

// GetOrder fetches an order and its line items. A missing order is (nil, nil).
func (s *gormStore) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return &order, nil
}

// UpdateOrderStatus moves an order to a new status. Backward transitions and
// updates to cancelled orders return ErrInvalidTransition; an unknown id
// returns gorm.ErrRecordNotFound.
func (s *gormStore) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.First(&order, id).Error; err != nil {
			return err
		}
		if !model.CanTransition(order.Status, status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
		}
		return tx.Model(&order).Update("status", status).Error
	})
}

// ActiveOrders lists pending/preparing/ready orders, newest first, with the
// customer name attached for the operator dashboard.
func (s *gormStore) ActiveOrders(ctx context.Context) ([]ActiveOrder, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("status IN ?", activeStatuses).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list active orders: %w", err)
	}

	userIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		userIDs = append(userIDs, o.UserID)
	}

	nameByID := make(map[string]string, len(userIDs))
	if len(userIDs) > 0 {
		var users []model.User
		if err := s.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return nil, fmt.Errorf("load customers for active orders: %w", err)
		}
		for _, u := range users {
			nameByID[u.ID] = u.Name
		}
	}

	result := make([]ActiveOrder, 0, len(orders))
	for _, o := range orders {
		result = append(result, ActiveOrder{Order: o, CustomerName: nameByID[o.UserID]})
	}
	return result, nil
}

// UserOrderHistory lists a user's orders, newest first, bounded by limit.
func (s *gormStore) UserOrderHistory(ctx context.Context, userID string, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("order history for user %s: %w", userID, err)
	}
	return orders, nil
}
