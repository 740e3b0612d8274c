package notifications

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Adam9898/pw-manager-backend/internal/common"
	"github.com/Adam9898/pw-manager-backend/internal/logging"
	"github.com/Adam9898/pw-manager-backend/internal/server/models"
)

func newTestBus() *Bus {
	return NewBus(logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func testNotification() *models.Notification {
	return &models.Notification{
		AdminEmail:  "admin@example.com",
		Title:       "maintenance",
		Description: "the service restarts at midnight",
	}
}

func TestBus_PublishReachesAllSubscribers(t *testing.T) {
	bus := newTestBus()
	defer bus.Close()

	ch1, _ := bus.Subscribe(context.Background())
	ch2, _ := bus.Subscribe(context.Background())

	want := testNotification()
	if err := bus.Publish(context.Background(), want); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	for i, ch := range []<-chan *models.Notification{ch1, ch2} {
		select {
		case got := <-ch:
			if got.Title != want.Title || got.AdminEmail != want.AdminEmail {
				t.Fatalf("subscriber %d received %+v, want %+v", i, got, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d did not receive the notification", i)
		}
	}
}

func TestBus_InvalidNotificationReachesNobody(t *testing.T) {
	bus := newTestBus()
	defer bus.Close()

	ch, _ := bus.Subscribe(context.Background())

	err := bus.Publish(context.Background(), &models.Notification{Title: "no sender"})
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation, got %v", err)
	}

	select {
	case got := <-ch:
		t.Fatalf("invalid notification must not be delivered, got %+v", got)
	default:
	}
}

func TestBus_UnsubscribeClosesChannel(t *testing.T) {
	bus := newTestBus()
	defer bus.Close()

	ch, subID := bus.Subscribe(context.Background())
	bus.Unsubscribe(subID)

	if _, open := <-ch; open {
		t.Fatalf("channel still open after unsubscribe")
	}

	// Removing an unknown id must not panic.
	bus.Unsubscribe(subID)

	if err := bus.Publish(context.Background(), testNotification()); err != nil {
		t.Fatalf("Publish after unsubscribe errored: %v", err)
	}
}

func TestBus_ContextCancelUnsubscribes(t *testing.T) {
	bus := newTestBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, _ := bus.Subscribe(ctx)
	cancel()

	select {
	case _, open := <-ch:
		if open {
			t.Fatalf("expected channel close, got a value")
		}
	case <-time.After(time.Second):
		t.Fatalf("channel not closed after context cancellation")
	}
}

func TestBus_PublishDuringDisconnects(t *testing.T) {
	bus := newTestBus()
	defer bus.Close()

	var wg sync.WaitGroup

	// Subscribers that drop off while publishes are in flight. A fanout
	// racing a disconnect must never send on the closed channel.
	for i := 0; i < 20; i++ {
		ch, subID := bus.Subscribe(context.Background())
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range ch {
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Unsubscribe(subID)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			if err := bus.Publish(context.Background(), testNotification()); err != nil {
				t.Errorf("Publish error: %v", err)
				return
			}
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("publish/unsubscribe churn did not settle")
	}
}

func TestBus_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	bus := newTestBus()
	defer bus.Close()

	bus.Subscribe(context.Background()) // never drained

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBufferSize+5; i++ {
			_ = bus.Publish(context.Background(), testNotification())
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Publish blocked on a full subscriber buffer")
	}
}
