// Package notify sends order-ready web push notifications to subscribed
// browsers.
package notify

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"brewbyte-backend/internal/model"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real implementation of Sender using the webpush
// library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool delivers order-ready notifications off the request path. Jobs
// are order ids dispatched when an order transitions to ready.
type WorkerPool struct {
	size    int
	jobs    chan int64
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan int64, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case orderID := <-wp.jobs:
			log.Printf("Notification worker %d processing order %d", id, orderID)
			wp.notifyOrderReady(ctx, orderID)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues an order for notification.
func (wp *WorkerPool) Dispatch(orderID int64) {
	wp.jobs <- orderID
}

// SetSender swaps the push transport; used by tests.
func (wp *WorkerPool) SetSender(s Sender) {
	wp.sender = s
}

// notifyOrderReady pushes to every subscription of the order's customer.
func (wp *WorkerPool) notifyOrderReady(ctx context.Context, orderID int64) {
	var order model.Order
	if err := wp.db.WithContext(ctx).First(&order, orderID).Error; err != nil {
		log.Printf("Error fetching order %d for notification: %v", orderID, err)
		return
	}

	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Where("user_id = ?", order.UserID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for user %s: %v", order.UserID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	var user model.User
	customer := order.UserID
	if err := wp.db.WithContext(ctx).Select("name").First(&user, "id = ?", order.UserID).Error; err != nil {
		log.Printf("Error fetching user %s: %v", order.UserID, err)
	} else if user.Name != "" {
		customer = user.Name
	}

	log.Printf("Sending %d notifications for order %d", len(subscriptions), orderID)
	message := fmt.Sprintf("Order #%d for %s is ready for pickup!", orderID, customer)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// 410 means the browser dropped the subscription.
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
