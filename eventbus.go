package meibo

import "reflect"

// MaxEventTypes defines the maximum number of unique event types that can be
// registered in the EventBus. It matches the component budget.
const MaxEventTypes = 128

// EventBus provides a simple, efficient, and type-safe event bus for
// decoupled communication between different parts of an application. A World
// constructed with WithEventBus publishes EntitySpawned, EntityDisposed and
// ArchetypeCreated events on it; callers may publish their own event types on
// the same bus.
//
// Publish is allocation-free, making it suitable for hot paths. The bus is
// not synchronized; it follows the single-threaded mutation model of the
// World it is attached to.
type EventBus struct {
	eventTypeMap    map[reflect.Type]uint8
	handlers        [MaxEventTypes][]interface{}
	nextEventTypeID uint8
}

// EntitySpawned is published after an entity has been registered into its
// archetype table.
type EntitySpawned struct {
	World  *World
	Entity Entity
}

// EntityDisposed is published after an entity's row has been erased and the
// entity dropped from the registry.
type EntityDisposed struct {
	World  *World
	Entity Entity
}

// ArchetypeCreated is published when a component-set mask is seen for the
// first time and its table is created.
type ArchetypeCreated struct {
	World      *World
	Components int
}

// Subscribe registers a handler function to be called when an event of type
// `T` is published. Handlers are stored in the order they are subscribed.
//
// This operation may allocate memory if it's the first time subscribing to a
// particular event type or if the internal handler list needs to be resized.
//
// Parameters:
//   - bus: The EventBus instance to subscribe to.
//   - handler: A function that takes a single argument of type `T`.
func Subscribe[T any](bus *EventBus, handler func(T)) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	id := bus.getEventTypeID(t)
	if cap(bus.handlers[id]) == 0 {
		bus.handlers[id] = make([]interface{}, 0, 4) // Preallocate small capacity to reduce reallocs
	}
	bus.handlers[id] = append(bus.handlers[id], handler)
}

// Publish broadcasts an event of type `T` to all registered handlers for that
// type. The handlers are called synchronously in the order they were
// subscribed.
//
// Parameters:
//   - bus: The EventBus instance to publish to.
//   - event: The event data of type `T` to be sent to handlers.
func Publish[T any](bus *EventBus, event T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if id, ok := bus.eventTypeMap[t]; ok {
		hs := bus.handlers[id]
		for _, h := range hs {
			h.(func(T))(event)
		}
	}
}

// getEventTypeID retrieves or assigns an ID for the event type.
func (bus *EventBus) getEventTypeID(t reflect.Type) uint8 {
	if bus.eventTypeMap == nil {
		bus.eventTypeMap = make(map[reflect.Type]uint8)
	}
	if id, ok := bus.eventTypeMap[t]; ok {
		return id
	}
	id := bus.nextEventTypeID
	if int(id) >= MaxEventTypes {
		panic("meibo: too many event types")
	}
	bus.nextEventTypeID++
	bus.eventTypeMap[t] = id
	return id
}
