// Package ports defines the EventBus interface for event-driven communication.
// The event bus decouples the game services from the presentation layer.
package ports

import (
	"github.com/tejashwikalptaru/superquiz/internal/domain"
)

// EventBus is the interface for publishing and subscribing to events.
//
// Multiple subscribers can listen to the same event type, and subscribers
// do not know about publishers. Implementations must be thread-safe.
//
// Services publish events after releasing their own locks; handlers must
// not call back into the publishing service synchronously.
type EventBus interface {
	// Publish delivers an event to all subscribers of its type. Delivery
	// order follows subscription order for synchronous implementations.
	//
	// This method must not block for long periods; slow handlers should
	// dispatch to a background goroutine.
	Publish(event domain.Event)

	// Subscribe registers a handler for events of the specified type.
	// The same handler can be registered multiple times, resulting in
	// multiple calls per event.
	//
	// Returns a SubscriptionID that can be used to unsubscribe later.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a previously registered handler.
	// Unknown or already removed IDs are a no-op.
	Unsubscribe(id domain.SubscriptionID)

	// SubscribeAll registers a handler that receives every event
	// regardless of type. Useful for logging and the SSE fan-out.
	//
	// Returns a SubscriptionID that can be used to unsubscribe later.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// HasSubscribers reports whether any subscription exists for the
	// given event type.
	HasSubscribers(eventType domain.EventType) bool

	// Close shuts down the event bus and clears all subscriptions.
	// After Close, publishing is a no-op.
	Close() error
}
