// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-orbit/pkg/physics"
)

// Type represents the type of event
type Type string

// Turn lifecycle event types
const (
	PlayerPlaced   Type = "player_placed"
	TurnRecorded   Type = "turn_recorded"
	TurnUndone     Type = "turn_undone"
	TurnRedone     Type = "turn_redone"
	TurnAdvanced   Type = "turn_advanced"
	GravityToggled Type = "gravity_toggled"
	GameReset      Type = "game_reset"
	ViewReset      Type = "view_reset"
	GameSaved      Type = "game_saved"
	GameLoaded     Type = "game_loaded"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// PlayerEvent is an event about a specific player
type PlayerEvent struct {
	BaseEvent
	PlayerID int
}

// PlacementEvent fires when a player's initial position is confirmed
type PlacementEvent struct {
	PlayerEvent
	Position physics.GridVector
}

// TurnEvent fires when a turn is recorded, undone, or redone. Head is
// the play-head after the operation; HeadPresent is false when the undo
// parked the head at nothing.
type TurnEvent struct {
	PlayerEvent
	Record      physics.TurnRecord
	Head        int
	HeadPresent bool
}

// GravityEvent fires when the gravity setting flips
type GravityEvent struct {
	BaseEvent
	Enabled bool
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler so it can be removed
type Subscription int

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	next     Subscription
	handlers map[Type]map[Subscription]Handler
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type]map[Subscription]Handler),
	}
}

// Subscribe registers a handler for a specific event type and returns a
// token for Unsubscribe.
func (b *Bus) Subscribe(eventType Type, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make(map[Subscription]Handler)
	}
	b.next++
	b.handlers[eventType][b.next] = handler
	return b.next
}

// Unsubscribe removes a previously registered handler
func (b *Bus) Unsubscribe(eventType Type, sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if handlers, ok := b.handlers[eventType]; ok {
		delete(handlers, sub)
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	registered := b.handlers[event.GetType()]
	handlers := make([]Handler, 0, len(registered))
	for _, h := range registered {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}
