package meeting_dto

import "time"

type AttendeeView struct {
	EmployeeID  string     `json:"employee_id"`
	DisplayName string     `json:"display_name"`
	Email       string     `json:"email,omitempty"`
	Response    string     `json:"response"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

type MeetingResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description *string        `json:"description,omitempty"`
	StartUTC    time.Time      `json:"start_utc"`
	EndUTC      time.Time      `json:"end_utc"`
	Location    *string        `json:"location,omitempty"`
	Status      string         `json:"status"`
	OrganizerID string         `json:"organizer_id"`
	Attendees   []AttendeeView `json:"attendees"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CalendarEventResponse is a denormalized row for calendar rendering; the
// organizer name is resolved in one batch directory lookup per query.
type CalendarEventResponse struct {
	MeetingID     string    `json:"meeting_id"`
	Title         string    `json:"title"`
	StartUTC      time.Time `json:"start_utc"`
	EndUTC        time.Time `json:"end_utc"`
	Location      *string   `json:"location,omitempty"`
	Status        string    `json:"status"`
	OrganizerID   string    `json:"organizer_id"`
	OrganizerName string    `json:"organizer_name"`
}
