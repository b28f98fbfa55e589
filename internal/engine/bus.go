package engine

import (
	"time"

	"github.com/charmbracelet/log"
)

// Message is the envelope delivered to listeners. Data is shared by
// reference across all listeners of one publish; listeners must not mutate it
// unless the topic's convention says so.
type Message struct {
	Type      string
	Data      map[string]any
	Timestamp time.Time
}

// Handler receives published messages.
type Handler func(Message)

type listener struct {
	id uint64
	fn Handler
}

// BusOption configures a Bus at construction.
type BusOption func(*Bus)

// WithFastTopics marks topics that bypass the queueing path entirely.
// Publishes on these topics dispatch immediately even from inside another
// dispatch, trading re-entrancy protection for latency on per-frame traffic.
func WithFastTopics(topics ...string) BusOption {
	return func(b *Bus) {
		for _, t := range topics {
			b.fastTopics[t] = struct{}{}
		}
	}
}

// WithForwarding routes the listed topics to a primary bus instead of
// dispatching them locally. Used when several bus instances exist in one
// process and a lifecycle topic (game over) must reach the primary's
// listeners regardless of which bus it was published on.
func WithForwarding(primary *Bus, topics ...string) BusOption {
	return func(b *Bus) {
		b.forwardTo = primary
		for _, t := range topics {
			b.forwardTopics[t] = struct{}{}
		}
	}
}

// WithBusLogger attaches a logger for listener panic reports.
func WithBusLogger(logger *log.Logger) BusOption {
	return func(b *Bus) {
		b.logger = logger
	}
}

// WithClock overrides the timestamp source. Tests use this for deterministic
// message timestamps.
func WithClock(now func() time.Time) BusOption {
	return func(b *Bus) {
		b.now = now
	}
}

// Bus is a synchronous in-process publish/subscribe dispatcher. Listeners for
// a topic fire in subscription order. A publish issued from inside a running
// dispatch is queued and delivered after the current wave completes, so
// listener-triggered messages never nest.
//
// Like everything in this package, a Bus belongs to the single control-flow
// thread and takes no locks.
type Bus struct {
	listeners map[string][]listener
	nextID    uint64

	fastTopics    map[string]struct{}
	forwardTopics map[string]struct{}
	forwardTo     *Bus

	dispatching bool
	pending     []Message

	logger *log.Logger
	now    func() time.Time

	published uint64
	deferred  uint64
	recovered uint64
}

// NewBus creates a message bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{
		listeners:     make(map[string][]listener),
		fastTopics:    make(map[string]struct{}),
		forwardTopics: make(map[string]struct{}),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe appends a listener for the topic and returns a closure that
// removes exactly that listener. Subscribing the same function twice is
// allowed; both registrations fire.
func (b *Bus) Subscribe(topic string, fn Handler) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.listeners[topic] = append(b.listeners[topic], listener{id: id, fn: fn})
	return func() {
		b.remove(topic, id)
	}
}

// remove deletes the listener with the given id. The listener slice is
// rebuilt rather than mutated in place so a dispatch iterating a snapshot of
// the old slice is never corrupted by an unsubscribe from within a callback.
func (b *Bus) remove(topic string, id uint64) {
	old := b.listeners[topic]
	idx := -1
	for i, l := range old {
		if l.id == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	if len(old) == 1 {
		// Keep the topic map sparse.
		delete(b.listeners, topic)
		return
	}
	replacement := make([]listener, 0, len(old)-1)
	replacement = append(replacement, old[:idx]...)
	replacement = append(replacement, old[idx+1:]...)
	b.listeners[topic] = replacement
}

// ListenerCount returns the number of listeners registered for a topic.
func (b *Bus) ListenerCount(topic string) int {
	return len(b.listeners[topic])
}

// FastPublish dispatches synchronously and immediately to all current
// listeners of the topic, with no re-entrancy guard and no queueing. Callers
// accept that a listener may itself publish and recurse. Intended for
// very-high-frequency topics such as per-step transform updates.
func (b *Bus) FastPublish(topic string, data map[string]any) {
	msg := Message{Type: topic, Data: data, Timestamp: b.now()}
	b.published++
	for _, l := range b.listeners[topic] {
		b.invoke(l, msg)
	}
}

// Publish delivers a message to all listeners of the topic in subscription
// order. High-frequency topics take the fast path. If a dispatch is already
// in progress the message is deferred, not dropped: it runs after the current
// wave, in FIFO order with any other deferred messages.
func (b *Bus) Publish(topic string, data map[string]any) {
	if b.forwardTo != nil {
		if _, ok := b.forwardTopics[topic]; ok {
			b.forwardTo.Publish(topic, data)
			return
		}
	}

	if _, ok := b.fastTopics[topic]; ok {
		b.FastPublish(topic, data)
		return
	}

	if b.dispatching {
		b.pending = append(b.pending, Message{Type: topic, Data: data, Timestamp: b.now()})
		b.deferred++
		return
	}

	b.dispatch(Message{Type: topic, Data: data, Timestamp: b.now()})

	// Drain messages queued by listeners, breadth-first across waves. A
	// drained message may enqueue more; those run after the current drain
	// pass reaches them.
	for len(b.pending) > 0 {
		next := b.pending[0]
		b.pending = b.pending[1:]
		b.dispatch(next)
	}
}

// dispatch runs one wave: every listener of one message, in order.
func (b *Bus) dispatch(msg Message) {
	b.dispatching = true
	defer func() { b.dispatching = false }()

	b.published++
	for _, l := range b.listeners[msg.Type] {
		b.invoke(l, msg)
	}
}

// invoke calls one listener, isolating panics so a broken subscriber cannot
// halt the event system or skip later listeners.
func (b *Bus) invoke(l listener, msg Message) {
	defer func() {
		if r := recover(); r != nil {
			b.recovered++
			if b.logger != nil {
				b.logger.Error("listener panicked", "topic", msg.Type, "listener", l.id, "panic", r)
			}
		}
	}()
	l.fn(msg)
}

// BusStats is a snapshot of bus counters.
type BusStats struct {
	Published uint64 // Messages dispatched (fast and queued paths)
	Deferred  uint64 // Messages queued because a dispatch was in progress
	Recovered uint64 // Listener panics isolated
}

// Stats returns a snapshot of the bus's counters.
func (b *Bus) Stats() BusStats {
	return BusStats{Published: b.published, Deferred: b.deferred, Recovered: b.recovered}
}
