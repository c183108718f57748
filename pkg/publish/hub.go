package publish

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// subscriberBufferSize is the per-subscriber channel depth before events are
// dropped for that subscriber
const subscriberBufferSize = 64

// Hub is an in-process publisher that fans events out to subscribers.
// A slow subscriber loses events rather than stalling the engine.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]chan Event
}

// NewHub returns a hub with no subscribers
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]chan Event),
	}
}

// Subscribe registers a new subscriber and returns its ID and event channel.
// The channel is closed on Unsubscribe.
func (h *Hub) Subscribe() (string, <-chan Event) {
	id := uuid.New().String()
	ch := make(chan Event, subscriberBufferSize)

	h.mu.Lock()
	h.subscribers[id] = ch
	h.mu.Unlock()

	return id, ch
}

// Unsubscribe removes the subscriber and closes its channel.
// Unknown IDs are a no-op.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[id]; ok {
		delete(h.subscribers, id)
		close(ch)
	}
}

// Publish delivers the event to every subscriber without blocking
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			logrus.WithFields(logrus.Fields{
				"subscriber": id,
				"type":       event.Type,
			}).Warn("subscriber buffer full, dropping event")
		}
	}
}
