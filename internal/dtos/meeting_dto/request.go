package meeting_dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateMeetingRequest struct {
	Title       string      `json:"title" validate:"required,max=200"`
	Description *string     `json:"description,omitempty" validate:"omitempty,max=2000"`
	StartUTC    time.Time   `json:"start_utc" validate:"required"`
	EndUTC      time.Time   `json:"end_utc" validate:"required"`
	Location    *string     `json:"location,omitempty" validate:"omitempty,max=300"`
	OrganizerID uuid.UUID   `json:"organizer_id" validate:"required"`
	AttendeeIDs []uuid.UUID `json:"attendee_ids"`
}

type UpdateMeetingRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	StartUTC    *time.Time `json:"start_utc,omitempty"`
	EndUTC      *time.Time `json:"end_utc,omitempty"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,max=300"`
}

type RespondToMeetingRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" validate:"required"`
	Response   string    `json:"response" validate:"required"`
}

type CalendarRangeRequest struct {
	StartUTC   time.Time
	EndUTC     time.Time
	EmployeeID *uuid.UUID
}
