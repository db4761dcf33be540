// Package signal provides the process-wide publish/subscribe channel used to
// broadcast session invalidation. Listeners register explicitly during their
// own initialization and deregister through the cancel function returned by
// Subscribe; delivery is synchronous and in subscription order, so a publisher
// returns only after every listener registered at the moment of publication
// has run.
//
// # What this package must NOT do
//
//   - Carry payloads — a signal is a bare topic name.
//   - Spawn goroutines or buffer deliveries.
//   - Know anything about sessions, transport, or navigation.
package signal

import "sync"

// AuthLogout is fired when a request observes HTTP 401 and the session is
// force-terminated. It carries no payload.
const AuthLogout = "auth:logout"

type subscriber struct {
	id int
	fn func()
}

// Hub is a synchronous topic-keyed broadcast channel. The zero value is not
// usable; construct with [NewHub]. Hub is safe for concurrent use.
type Hub struct {
	mu     sync.Mutex
	nextID int
	topics map[string][]subscriber
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{topics: make(map[string][]subscriber)}
}

// Subscribe registers fn for topic and returns a cancel function that removes
// the registration. Cancel is idempotent.
func (h *Hub) Subscribe(topic string, fn func()) func() {
	if h == nil || fn == nil {
		return func() {}
	}
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.topics[topic] = append(h.topics[topic], subscriber{id: id, fn: fn})
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		subs := h.topics[topic]
		for i, s := range subs {
			if s.id == id {
				h.topics[topic] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish invokes, synchronously and in subscription order, every listener
// registered for topic at the moment of the call.
func (h *Hub) Publish(topic string) {
	if h == nil {
		return
	}
	h.mu.Lock()
	subs := make([]subscriber, len(h.topics[topic]))
	copy(subs, h.topics[topic])
	h.mu.Unlock()

	for _, s := range subs {
		s.fn()
	}
}
