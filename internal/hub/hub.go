package hub

import (
	"log"
	"sync"

	"github.com/DedPeredoz/rustyloot-scraper/internal/model"
)

const subscriberBuffer = 256

// Hub fans decoded events out to dashboard subscribers. Publishing never
// blocks the run loop; slow consumers lose events instead.
type Hub struct {
	logger      *log.Logger
	mu          sync.RWMutex
	subscribers []chan model.SocketEvent
	dropped     int64
	closed      bool
}

// New creates an empty Hub.
func New(logger *log.Logger) *Hub {
	return &Hub{logger: logger}
}

// Subscribe returns a buffered channel that will receive published events.
// Multiple consumers can subscribe; each gets a copy of every event.
func (h *Hub) Subscribe() <-chan model.SocketEvent {
	ch := make(chan model.SocketEvent, subscriberBuffer)
	h.mu.Lock()
	if h.closed {
		close(ch)
	} else {
		h.subscribers = append(h.subscribers, ch)
	}
	h.mu.Unlock()
	return ch
}

// Dropped returns the total number of events dropped for slow consumers.
func (h *Hub) Dropped() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped
}

// Publish sends an event to all subscribers. If a subscriber's channel is
// full, the event is dropped for that subscriber.
func (h *Hub) Publish(ev model.SocketEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- ev:
		default:
			h.dropped++
			h.logger.Printf("hub: dropped event for slow consumer (total dropped: %d)", h.dropped)
		}
	}
}

// Close closes all subscriber channels. Further Subscribe calls return a
// closed channel and further Publish calls are no-ops.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subscribers {
		close(ch)
	}
	h.subscribers = nil
	h.closed = true
}
