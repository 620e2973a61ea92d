package core

// Event represents a game event
type Event struct {
	Type    EventType
	Tick    uint64
	Payload interface{}
}

type EventType uint16

const (
	EvtEntitySpawned EventType = iota
	EvtEntityHit
	EvtEntityKilled
	EvtBossSpawned
	EvtPowerUpUsed
	EvtLevelStarted
	EvtLevelComplete
	EvtGameOver
	EvtVictory
)

// EntityEvent is the payload for spawn, hit and kill events
type EntityEvent struct {
	ID    EntityID
	Kind  Kind
	X, Y  float64
	Score int // points awarded, 0 for spawns and hits
}

// PowerUpEvent is the payload for EvtPowerUpUsed
type PowerUpEvent struct {
	ID      EntityID
	Removed []EntityID
	Score   int
}

// LevelEvent is the payload for level and run transitions
type LevelEvent struct {
	RunID string
	Level int
	Score int
}

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Emit queues an event for dispatch. A nil bus drops it.
func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	eb.queue = append(eb.queue, e)
}

// Dispatch processes all queued events, including ones emitted by handlers.
func (eb *EventBus) Dispatch() {
	for i := 0; i < len(eb.queue); i++ {
		e := eb.queue[i]
		if handlers, ok := eb.listeners[e.Type]; ok {
			for _, h := range handlers {
				h(e)
			}
		}
	}
	eb.queue = eb.queue[:0]
}

// Hit is one player interaction: a click on an entity at screen coordinates
type Hit struct {
	ID   EntityID
	X, Y float64
}
