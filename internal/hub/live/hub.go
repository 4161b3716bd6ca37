// Package live is the in-process fan-out hub behind the notification event
// stream. Persistence is the source of truth; this push channel is an
// optimization, so publishes never block and slow subscribers simply miss
// events they can re-read from the store.
package live

import (
	"errors"
	"strings"
	"sync"
)

const (
	// DefaultBacklogSize is how many recent events a user's feed retains
	// for replay to a freshly connected subscriber.
	DefaultBacklogSize = 50

	// DefaultSubscriberBuffer is the channel depth per subscriber.
	DefaultSubscriberBuffer = 16
)

// Event is the wire shape pushed to a recipient's stream.
type Event struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Priority    string `json:"priority"`
	RelatedID   string `json:"related_id,omitempty"`
	RelatedType string `json:"related_type,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// Hub routes events to per-user feeds.
type Hub struct {
	mu               sync.RWMutex
	feeds            map[string]*feed
	backlogSize      int
	subscriberBuffer int
}

type feed struct {
	mu      sync.Mutex
	backlog []Event
	subs    map[uint64]chan Event
	nextID  uint64
}

// Subscription is one subscriber's handle on a user feed.
type Subscription struct {
	hub    *Hub
	userID string
	id     uint64
	ch     chan Event
	once   sync.Once
}

func NewHub() *Hub {
	return &Hub{
		feeds:            make(map[string]*feed),
		backlogSize:      DefaultBacklogSize,
		subscriberBuffer: DefaultSubscriberBuffer,
	}
}

// Publish delivers an event to every subscriber of the user's feed and
// appends it to the replay backlog. Subscribers with full channels are
// skipped rather than waited on.
func (h *Hub) Publish(userID string, event Event) {
	if h == nil {
		return
	}
	key := strings.TrimSpace(userID)
	if key == "" {
		return
	}

	f := h.ensureFeed(key)

	f.mu.Lock()
	f.backlog = append(f.backlog, event)
	if len(f.backlog) > h.backlogSize {
		f.backlog = f.backlog[len(f.backlog)-h.backlogSize:]
	}
	subs := make([]chan Event, 0, len(f.subs))
	for _, ch := range f.subs {
		subs = append(subs, ch)
	}
	f.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe attaches to a user's feed, returning the subscription and a
// copy of the current backlog for replay.
func (h *Hub) Subscribe(userID string) (*Subscription, []Event, error) {
	if h == nil {
		return nil, nil, errors.New("live: hub unavailable")
	}
	key := strings.TrimSpace(userID)
	if key == "" {
		return nil, nil, errors.New("live: missing user id")
	}

	f := h.ensureFeed(key)

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	ch := make(chan Event, h.subscriberBuffer)
	f.subs[id] = ch
	backlog := append([]Event(nil), f.backlog...)
	f.mu.Unlock()

	return &Subscription{hub: h, userID: key, id: id, ch: ch}, backlog, nil
}

func (h *Hub) ensureFeed(userID string) *feed {
	h.mu.RLock()
	current := h.feeds[userID]
	h.mu.RUnlock()
	if current != nil {
		return current
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	current = h.feeds[userID]
	if current == nil {
		current = &feed{subs: make(map[uint64]chan Event)}
		h.feeds[userID] = current
	}
	return current
}

func (h *Hub) unsubscribe(userID string, id uint64) {
	h.mu.RLock()
	f := h.feeds[userID]
	h.mu.RUnlock()
	if f == nil {
		return
	}

	f.mu.Lock()
	if ch, ok := f.subs[id]; ok {
		delete(f.subs, id)
		close(ch)
	}
	f.mu.Unlock()
}

// Events is the subscriber's receive channel; closed by Close.
func (s *Subscription) Events() <-chan Event { return s.ch }

// Close detaches the subscription from its feed. Safe to call twice.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s.userID, s.id)
	})
}
