// Package eventbus provides implementations of the EventBus interface.
package eventbus

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/ports"
)

// SyncEventBus is a synchronous implementation of the EventBus interface.
// Handlers run on the publishing goroutine in subscription order.
//
// Thread-safety: publish and subscribe/unsubscribe may be called
// concurrently. Slow handlers block event delivery; handlers that need to
// do real work should dispatch to a background goroutine.
type SyncEventBus struct {
	logger *slog.Logger

	mu     sync.RWMutex
	byType map[domain.EventType][]entry
	all    []entry
	closed bool

	idCounter uint64
}

// entry pairs a subscription ID with its handler.
type entry struct {
	id      domain.SubscriptionID
	handler domain.EventHandler
}

// NewSyncEventBus creates a new synchronous event bus.
func NewSyncEventBus() *SyncEventBus {
	return &SyncEventBus{
		byType: make(map[domain.EventType][]entry),
	}
}

// SetLogger sets the logger used for handler panic reports.
func (bus *SyncEventBus) SetLogger(logger *slog.Logger) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.logger = logger
}

// Publish delivers the event to type-specific subscribers, then wildcard
// subscribers. A nil event and a closed bus are both no-ops.
//
// Panics in handlers are recovered and logged; remaining handlers still run.
func (bus *SyncEventBus) Publish(event domain.Event) {
	if event == nil {
		return
	}

	bus.mu.RLock()
	if bus.closed {
		bus.mu.RUnlock()
		return
	}
	targets := make([]entry, 0, len(bus.byType[event.Type()])+len(bus.all))
	targets = append(targets, bus.byType[event.Type()]...)
	targets = append(targets, bus.all...)
	bus.mu.RUnlock()

	// Handlers run without the lock so they can subscribe/unsubscribe.
	for _, sub := range targets {
		bus.dispatch(sub.handler, event)
	}
}

// dispatch invokes one handler, recovering panics.
func (bus *SyncEventBus) dispatch(handler domain.EventHandler, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			if bus.logger != nil {
				bus.logger.Error("event handler panicked",
					slog.Any("panic", r),
					slog.String("event_type", string(event.Type())))
			}
		}
	}()
	handler(event)
}

// Subscribe registers a handler for events of the specified type.
// Returns a unique subscription ID usable with Unsubscribe.
func (bus *SyncEventBus) Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID {
	if handler == nil {
		panic("event handler cannot be nil")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		panic("cannot subscribe to closed event bus")
	}

	id := domain.SubscriptionID(fmt.Sprintf("sub-%d", atomic.AddUint64(&bus.idCounter, 1)))
	bus.byType[eventType] = append(bus.byType[eventType], entry{id: id, handler: handler})
	return id
}

// SubscribeAll registers a handler that receives every event.
// Returns a unique subscription ID usable with Unsubscribe.
func (bus *SyncEventBus) SubscribeAll(handler domain.EventHandler) domain.SubscriptionID {
	if handler == nil {
		panic("event handler cannot be nil")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		panic("cannot subscribe to closed event bus")
	}

	id := domain.SubscriptionID(fmt.Sprintf("sub-all-%d", atomic.AddUint64(&bus.idCounter, 1)))
	bus.all = append(bus.all, entry{id: id, handler: handler})
	return id
}

// Unsubscribe removes a previously registered handler.
// Unknown IDs are a no-op.
func (bus *SyncEventBus) Unsubscribe(id domain.SubscriptionID) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	for eventType, subs := range bus.byType {
		if filtered, removed := remove(subs, id); removed {
			bus.byType[eventType] = filtered
			return
		}
	}
	if filtered, removed := remove(bus.all, id); removed {
		bus.all = filtered
	}
}

// remove drops the entry with the given id, preserving order.
func remove(subs []entry, id domain.SubscriptionID) ([]entry, bool) {
	for i, sub := range subs {
		if sub.id == id {
			return append(subs[:i], subs[i+1:]...), true
		}
	}
	return subs, false
}

// HasSubscribers reports whether any subscription exists for the event type.
func (bus *SyncEventBus) HasSubscribers(eventType domain.EventType) bool {
	bus.mu.RLock()
	defer bus.mu.RUnlock()
	return len(bus.byType[eventType]) > 0 || len(bus.all) > 0
}

// SubscriberCount returns the number of active subscriptions, for debugging.
func (bus *SyncEventBus) SubscriberCount() int {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	count := len(bus.all)
	for _, subs := range bus.byType {
		count += len(subs)
	}
	return count
}

// Close shuts down the event bus and clears all subscriptions.
// Returns an error if already closed.
func (bus *SyncEventBus) Close() error {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		return fmt.Errorf("event bus already closed")
	}

	bus.closed = true
	bus.byType = make(map[domain.EventType][]entry)
	bus.all = nil
	return nil
}

// Verify that SyncEventBus implements the EventBus interface
var _ ports.EventBus = (*SyncEventBus)(nil)
