package entity

import (
	"time"

	"github.com/google/uuid"
)

type Meeting struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Title       string        `gorm:"not null"`
	Description *string
	StartUTC    time.Time     `gorm:"not null;index"`
	EndUTC      time.Time     `gorm:"not null"`
	Location    *string
	Status      MeetingStatus `gorm:"type:varchar(20);not null"`
	OrganizerID uuid.UUID     `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time     `gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime"`
}

type MeetingAttendee struct {
	MeetingID   uuid.UUID        `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Response    AttendeeResponse `gorm:"type:varchar(20);not null"`
	RespondedAt *time.Time
}

// MeetingPatch carries partial updates; nil fields stay untouched. The
// attendee set is never touched by a patch.
type MeetingPatch struct {
	Title       *string
	Description *string
	StartUTC    *time.Time
	EndUTC      *time.Time
	Location    *string
}
