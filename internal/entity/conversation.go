package entity

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	ID                  uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Subject             string             `gorm:"not null"`
	Icon                *string
	ChannelType         ChannelType        `gorm:"type:varchar(20);not null"`
	Status              ConversationStatus `gorm:"type:varchar(20);not null"`
	CreatedByEmployeeID uuid.UUID          `gorm:"type:uuid;not null"`
	CreatedAt           time.Time          `gorm:"autoCreateTime"`
	LastMessageAt       *time.Time         `gorm:"index"`
}

type ConversationParticipant struct {
	ConversationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	JoinedAt       time.Time `gorm:"not null"`
}

// ConversationMessage rows are append-only; there is no edit or delete.
type ConversationMessage struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConversationID   uuid.UUID `gorm:"type:uuid;not null;index:idx_conversation_sent"`
	SenderEmployeeID uuid.UUID `gorm:"type:uuid;not null"`
	Content          string    `gorm:"not null"`
	SentAt           time.Time `gorm:"not null;index:idx_conversation_sent"`
}

// ChannelReadReceipt is the per-employee-per-conversation bookmark used to
// derive unread counts. LastReadAt only moves forward; upserts take the max.
type ChannelReadReceipt struct {
	ConversationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	LastReadAt     time.Time `gorm:"not null"`
}
