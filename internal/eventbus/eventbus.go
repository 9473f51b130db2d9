// Package eventbus provides the in-process publish/subscribe bus carrying
// coordination events between the coordinator, the sweeper and the notifier
// relay.
package eventbus

// Event represents an arbitrary event passed on the bus.
type Event interface{}

// EventBus implements a simple publish/subscribe event bus.
type EventBus interface {
	Publish(Event)
	Subscribe() <-chan Event
	Unsubscribe(<-chan Event)
	Close()
}

// Bus is the default EventBus implementation. Delivery is non-blocking: a
// subscriber that falls more than subscriberBuffer events behind loses
// events rather than stalling publishers.
type Bus struct {
	TypedBus[Event]
}

// New creates a new Bus.
func New() *Bus { return &Bus{} }
