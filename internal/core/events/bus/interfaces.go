package bus

import "time"

// EventBus is a thread-safe, in-process pub/sub bus used to hand diagnostics
// from the engine to whoever wants them.
//
// - Handlers subscribe by Event.Type().
// - Publish delivers synchronously in the caller goroutine.
// - Handler errors are joined and returned from Publish.
type EventBus interface {
	// Publish delivers the event to all subscribers of event.Type().
	Publish(event Event) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels the given Subscription. Nil is ignored.
	Unsubscribe(Subscription) error
}

// Event is an immutable message transported by the EventBus.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
	Metadata() map[string]any
}

// EventHandler is invoked once per delivered event.
type EventHandler func(event Event) error

// Subscription is a registered handler bound to an event type.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler. Multiple calls are safe.
	Cancel() error
}
