package sim

type EventType int

const (
	EventFoodEaten EventType = iota
	EventEvolved
	EventPowerActivated
	EventPowerExpired
	EventObstacleDestroyed
	EventTailConsumed
	EventSurvivalBonus
	EventGameOver
)

// Event is one outbound notification. Collaborators (audio, particles,
// score UI) drain the queue after each tick; nothing subscribes
// callbacks into the core, so no handler can mutate state mid-tick.
type Event struct {
	Type  EventType
	Cell  Vec2
	Power PowerKind // EventPowerActivated / EventPowerExpired
	Value int       // points, level, or destroyed count depending on Type
}

// eventQueue is a flat per-tick buffer owned by the Session.
type eventQueue struct {
	pending []Event
}

func (q *eventQueue) push(e Event) {
	q.pending = append(q.pending, e)
}

// drain returns the buffered events and empties the queue. The returned
// slice is owned by the caller.
func (q *eventQueue) drain() []Event {
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}

func (q *eventQueue) reset() {
	q.pending = nil
}
