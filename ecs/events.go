package ecs

type EventType string

const (
	EventTurretAimed   EventType = "turret_aimed"
	EventTurretUnaimed EventType = "turret_unaimed"
	EventTurretAtRest  EventType = "turret_at_rest"
	EventTurretActive  EventType = "turret_active"
)

// Event is an ECS event payload about one entity.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Peek returns a copy of the queued events without removing them.
func (q *EventQueue) Peek() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	return append([]Event(nil), q.items...)
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
