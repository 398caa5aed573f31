package meeting_repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamgrid/teamgrid/internal/entity"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
)

type CalendarFilter struct {
	StartUTC   time.Time
	EndUTC     time.Time
	EmployeeID *uuid.UUID
}

type MeetingRepoContract interface {
	// CreateMeeting writes the meeting, its attendee rows and the booked
	// event in one transaction so a reader never observes a meeting with a
	// partial attendee set.
	CreateMeeting(ctx context.Context, meeting entity.Meeting, attendees []entity.MeetingAttendee, event entity.OutboxEvent) *app_error.AppError
	FindMeetingByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, *app_error.AppError)
	UpdateMeeting(ctx context.Context, meeting entity.Meeting) *app_error.AppError
	CancelMeeting(ctx context.Context, id uuid.UUID, at time.Time, event entity.OutboxEvent) *app_error.AppError

	FindAttendees(ctx context.Context, meetingID uuid.UUID) ([]entity.MeetingAttendee, *app_error.AppError)
	FindAttendeesByMeetingIDs(ctx context.Context, meetingIDs []uuid.UUID) ([]entity.MeetingAttendee, *app_error.AppError)
	FindAttendee(ctx context.Context, meetingID, employeeID uuid.UUID) (*entity.MeetingAttendee, *app_error.AppError)
	// UpdateAttendee is scoped to the (meeting, employee) row; concurrent
	// responses from different attendees never clobber each other.
	UpdateAttendee(ctx context.Context, attendee entity.MeetingAttendee) *app_error.AppError

	FindOverlapping(ctx context.Context, filter CalendarFilter) ([]entity.Meeting, *app_error.AppError)
	FindUpcoming(ctx context.Context, after time.Time, limit int) ([]entity.Meeting, *app_error.AppError)
}
