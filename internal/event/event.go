package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Common event types
const (
	RewardGranted      Type = "reward.granted"
	RewardRejected     Type = "reward.rejected"
	GachaDrawCompleted Type = "gacha.draw.completed"
)

// Typed event payloads for type safety

// GrantedReward is one resolved reward inside a granted batch payload
type GrantedReward struct {
	Type    string `json:"type"`
	TypeKey string `json:"type_key"`
	Amount  int    `json:"amount"`
}

// RewardGrantedPayloadV1 is the typed payload for committed reward batches
type RewardGrantedPayloadV1 struct {
	UserID    string          `json:"user_id"`
	Source    string          `json:"source"`
	Rewards   []GrantedReward `json:"rewards"`
	Timestamp int64           `json:"timestamp"`
}

// RewardRejectedPayloadV1 is the typed payload for batches that failed simulation
type RewardRejectedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Source    string `json:"source"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

// GachaDrawCompletedPayloadV1 is the typed payload for completed gacha draws
type GachaDrawCompletedPayloadV1 struct {
	UserID      string   `json:"user_id"`
	GachaKey    string   `json:"gacha_key"`
	DrawCount   int      `json:"draw_count"`
	Modes       []string `json:"modes"`
	NormalPity  int      `json:"normal_pity"`
	SpecialPity int      `json:"special_pity"`
	Timestamp   int64    `json:"timestamp"`
}

// Type-safe event constructors

// NewRewardGrantedEvent creates a new reward granted event with type-safe payload
func NewRewardGrantedEvent(userID, source string, rewards []GrantedReward) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RewardGranted,
		Payload: RewardGrantedPayloadV1{
			UserID:    userID,
			Source:    source,
			Rewards:   rewards,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewRewardRejectedEvent creates a new reward rejected event
func NewRewardRejectedEvent(userID, source, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RewardRejected,
		Payload: RewardRejectedPayloadV1{
			UserID:    userID,
			Source:    source,
			Reason:    reason,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewGachaDrawCompletedEvent creates a new gacha draw completed event
func NewGachaDrawCompletedEvent(userID, gachaKey string, drawCount int, modes []string, normalPity, specialPity int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GachaDrawCompleted,
		Payload: GachaDrawCompletedPayloadV1{
			UserID:      userID,
			GachaKey:    gachaKey,
			DrawCount:   drawCount,
			Modes:       modes,
			NormalPity:  normalPity,
			SpecialPity: specialPity,
			Timestamp:   time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			"gacha_key": gachaKey,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously;
// a failing handler does not stop the remaining ones.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
