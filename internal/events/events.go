package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TypeMeetingBooked    = "meeting_booked"
	TypeMeetingCancelled = "meeting_cancelled"
)

// MeetingBooked is published once per created meeting and consumed by the
// external notification service.
type MeetingBooked struct {
	MeetingID      uuid.UUID `json:"meeting_id"`
	Title          string    `json:"title"`
	StartUTC       time.Time `json:"start_utc"`
	EndUTC         time.Time `json:"end_utc"`
	Location       *string   `json:"location,omitempty"`
	OrganizerEmail string    `json:"organizer_email"`
	OrganizerName  string    `json:"organizer_name"`
	AttendeeEmails []string  `json:"attendee_emails"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// MeetingCancelled is published once per cancellation.
type MeetingCancelled struct {
	MeetingID      uuid.UUID `json:"meeting_id"`
	Title          string    `json:"title"`
	StartUTC       time.Time `json:"start_utc"`
	AttendeeEmails []string  `json:"attendee_emails"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Publisher is the outbound port for domain events. Publication is
// fire-and-forget relative to the request that produced the event; callers
// never wait on downstream delivery. PublishDead parks an event that
// exhausted its delivery attempts.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
	PublishDead(ctx context.Context, eventType string, payload any, reason string) error
}
