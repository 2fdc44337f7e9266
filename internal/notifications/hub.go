package notifications

import (
	"sync"

	"github.com/google/uuid"

	"bokning/pkg/logger"
	"bokning/pkg/model"
)

// Publisher receives change events after a booking mutation commits.
type Publisher interface {
	Publish(event model.ChangeEvent)
}

// Fanout forwards an event to every publisher in order.
type Fanout []Publisher

func (f Fanout) Publish(event model.ChangeEvent) {
	for _, p := range f {
		p.Publish(event)
	}
}

// Subscription is one subscriber's event feed. C is closed on Unsubscribe.
type Subscription struct {
	ID string
	C  <-chan model.ChangeEvent

	ch chan model.ChangeEvent
}

// Hub is an in-process broadcast of change events to live subscribers.
// Publishing never blocks: a subscriber that cannot keep up with its buffer
// loses events rather than stalling the publisher.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]chan model.ChangeEvent
	buffer      int
	closed      bool
	log         *logger.Logger
}

func NewHub(buffer int, log *logger.Logger) *Hub {
	return &Hub{
		subscribers: make(map[string]chan model.ChangeEvent),
		buffer:      buffer,
		log:         log,
	}
}

func (h *Hub) Subscribe() *Subscription {
	ch := make(chan model.ChangeEvent, h.buffer)
	sub := &Subscription{
		ID: uuid.New().String(),
		C:  ch,
		ch: ch,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return sub
	}
	h.subscribers[sub.ID] = ch

	return sub
}

func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, ok := h.subscribers[id]
	if !ok {
		return
	}
	delete(h.subscribers, id)
	close(ch)
}

func (h *Hub) Publish(event model.ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			h.log.Warn("Subscriber buffer full, event dropped",
				"subscriber_id", id,
				"event_id", event.ID,
				"event_kind", event.Kind,
			)
		}
	}
}

// SubscriberCount reports the number of live subscriptions.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close drops all subscriptions. Further Subscribe calls get a closed feed.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subscribers {
		delete(h.subscribers, id)
		close(ch)
	}
}
