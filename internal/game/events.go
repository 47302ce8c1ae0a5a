package game

import (
	"time"

	"github.com/woneway/holdem-sim/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeHandStart      EventType = "hand_start"
	EventTypeHandEnd        EventType = "hand_end"
	EventTypeStreetChange   EventType = "street_change"
	EventTypePlayerAction   EventType = "player_action"
	EventTypeAwaitingAction EventType = "awaiting_action"
)

func (et EventType) String() string { return string(et) }

// GameEvent represents any event that occurs during a hand
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// ActionRecord is one entry of the per-hand action log.
type ActionRecord struct {
	PlayerID string
	Name     string
	Street   Street
	Action   Action
	Amount   int
}

// HandStartEvent is published when a new hand begins
type HandStartEvent struct {
	HandID     string
	HandNumber uint64
	Button     int
	SmallBlind int
	BigBlind   int
	Ante       int
	Players    []*Player
	timestamp  time.Time
}

func (e HandStartEvent) EventType() EventType { return EventTypeHandStart }
func (e HandStartEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published after a player action is applied
type PlayerActionEvent struct {
	HandID    string
	Record    ActionRecord
	PotAfter  int
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// StreetChangeEvent is published when community cards are revealed
type StreetChangeEvent struct {
	HandID    string
	Street    Street
	Board     []deck.Card
	timestamp time.Time
}

func (e StreetChangeEvent) EventType() EventType { return EventTypeStreetChange }
func (e StreetChangeEvent) Timestamp() time.Time { return e.timestamp }

// AwaitingActionEvent is published when the engine needs a decision from a
// seat. Schedulers and assistive displays consume it.
type AwaitingActionEvent struct {
	HandID    string
	PlayerID  string
	Seat      int
	ToCall    int
	PotOdds   float64
	timestamp time.Time
}

func (e AwaitingActionEvent) EventType() EventType { return EventTypeAwaitingAction }
func (e AwaitingActionEvent) Timestamp() time.Time { return e.timestamp }

// HandResult is the downstream-facing outcome of a completed hand.
type HandResult struct {
	HandID     string
	HandNumber uint64
	Winners    []string
	Losers     []string
	Settlement string
	Pot        int
	Board      []deck.Card
	Actions    []ActionRecord
	Showdown   bool
}

// HandEndEvent is published when a hand completes
type HandEndEvent struct {
	Result    *HandResult
	timestamp time.Time
}

func (e HandEndEvent) EventType() EventType { return EventTypeHandEnd }
func (e HandEndEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
