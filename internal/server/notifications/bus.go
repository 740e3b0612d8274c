// Package notifications provides the in-process pub/sub bus that fans
// published notifications out to connected event-stream clients. Delivery is
// best-effort: notifications are not persisted, and a client that is not
// subscribed at publish time never sees the message.
package notifications

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Adam9898/pw-manager-backend/internal/common"
	"github.com/Adam9898/pw-manager-backend/internal/logging"
	"github.com/Adam9898/pw-manager-backend/internal/server/models"
)

// subscriberBufferSize is the channel buffer for each subscriber.
const subscriberBufferSize = 16

// Bus is an in-memory fan-out for notifications. All subscribers share one
// topic: every published notification goes to every subscriber.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]chan *models.Notification
	logger      logging.Logger
}

// NewBus creates an empty bus.
func NewBus(logger logging.Logger) *Bus {
	return &Bus{
		subscribers: make(map[string]chan *models.Notification),
		logger:      logger.With("module", "notification_bus"),
	}
}

// Subscribe registers a subscriber and returns its channel together with a
// subscription id for explicit removal. The subscription is cleaned up
// automatically when ctx is cancelled.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *models.Notification, string) {
	subID := uuid.NewString()
	ch := make(chan *models.Notification, subscriberBufferSize)

	b.mu.Lock()
	b.subscribers[subID] = ch
	b.mu.Unlock()

	b.logger.Debug(ctx, "subscriber added", "sub_id", subID)

	go func() {
		<-ctx.Done()
		b.Unsubscribe(subID)
	}()

	return ch, subID
}

// Unsubscribe removes a subscription and closes its channel. Removing an
// unknown id is a no-op.
func (b *Bus) Unsubscribe(subID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, ok := b.subscribers[subID]
	if !ok {
		return
	}

	delete(b.subscribers, subID)
	close(ch)

	b.logger.Debug(context.Background(), "subscriber removed", "sub_id", subID)
}

// Publish validates the notification and sends it to every current
// subscriber. An invalid notification reaches nobody. Sends never block: a
// subscriber whose buffer is full misses the message.
//
// The read lock is held across the sends. Unsubscribe and Close take the
// write lock before closing a channel, so a send can never land on a closed
// channel; the sends are non-blocking, so the lock is held only briefly.
func (b *Bus) Publish(ctx context.Context, n *models.Notification) error {
	if err := n.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- n:
		default:
			b.logger.Warn(ctx, "dropped notification for slow subscriber", "title", n.Title)
		}
	}

	return nil
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for subID, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, subID)
	}
}
