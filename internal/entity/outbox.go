package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent is written in the same transaction as the entity change that
// triggered it. The dispatch worker drains undispatched rows, so delivery is
// at-least-once rather than best-effort.
type OutboxEvent struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EventType    string          `gorm:"not null;index"`
	Payload      json.RawMessage `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time       `gorm:"not null;index"`
	DispatchedAt *time.Time
}
