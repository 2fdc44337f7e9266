package notifications

import (
	"testing"

	"bokning/pkg/logger"
	"bokning/pkg/model"
)

func testLog() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
}

func TestHub_PublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub(4, testLog())
	defer hub.Close()

	sub1 := hub.Subscribe()
	sub2 := hub.Subscribe()

	event := model.ChangeEvent{ID: "ev-1", Kind: model.EventBookingCreated, BookingID: "b-1"}
	hub.Publish(event)

	for _, sub := range []*Subscription{sub1, sub2} {
		got := <-sub.C
		if got.ID != event.ID {
			t.Errorf("subscriber %s got event %s, want %s", sub.ID, got.ID, event.ID)
		}
	}
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub(4, testLog())
	defer hub.Close()

	sub := hub.Subscribe()
	hub.Unsubscribe(sub.ID)

	if _, open := <-sub.C; open {
		t.Error("channel should be closed after unsubscribe")
	}
	if hub.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", hub.SubscriberCount())
	}

	// Publishing to an empty hub must not panic or block.
	hub.Publish(model.ChangeEvent{ID: "ev-2", Kind: model.EventBookingDeleted, BookingID: "b-2"})
}

func TestHub_SlowSubscriberDropsEventsWithoutBlocking(t *testing.T) {
	hub := NewHub(1, testLog())
	defer hub.Close()

	slow := hub.Subscribe()

	hub.Publish(model.ChangeEvent{ID: "ev-1", Kind: model.EventBookingCreated, BookingID: "b-1"})
	// Buffer is full now; this publish must return immediately.
	hub.Publish(model.ChangeEvent{ID: "ev-2", Kind: model.EventBookingUpdated, BookingID: "b-1"})

	got := <-slow.C
	if got.ID != "ev-1" {
		t.Errorf("expected the buffered event ev-1, got %s", got.ID)
	}

	select {
	case extra := <-slow.C:
		t.Errorf("expected the second event to be dropped, got %s", extra.ID)
	default:
	}
}

func TestHub_UnsubscribeTwiceIsSafe(t *testing.T) {
	hub := NewHub(4, testLog())
	defer hub.Close()

	sub := hub.Subscribe()
	hub.Unsubscribe(sub.ID)
	hub.Unsubscribe(sub.ID)
}

func TestHub_CloseDropsAllSubscribers(t *testing.T) {
	hub := NewHub(4, testLog())

	sub := hub.Subscribe()
	hub.Close()

	if _, open := <-sub.C; open {
		t.Error("channel should be closed after hub close")
	}

	// Subscriptions after close get an already closed feed.
	late := hub.Subscribe()
	if _, open := <-late.C; open {
		t.Error("subscription after close should be closed immediately")
	}
}
