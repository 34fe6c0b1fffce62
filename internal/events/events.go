// Package events publishes bet and game lifecycle notifications.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	BetPlaced   Type = "bet.placed"
	BetSettled  Type = "bet.settled"
	GameSettled Type = "game.settled"
	WalletMoved Type = "wallet.moved"
)

// Event is the envelope written to the bus. Key decides partitioning.
type Event struct {
	ID         uuid.UUID   `json:"id"`
	Type       Type        `json:"type"`
	Key        string      `json:"key"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// New builds an event keyed by key.
func New(t Type, key string, payload interface{}) Event {
	return Event{
		ID:         uuid.New(),
		Type:       t,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher delivers events. Callers publish after their database
// transaction commits and treat failures as non-fatal.
type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

var _ Publisher = NopPublisher{}

func (NopPublisher) Publish(context.Context, ...Event) error { return nil }

func (NopPublisher) Close() error { return nil }
