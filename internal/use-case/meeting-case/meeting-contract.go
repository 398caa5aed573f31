package meeting_service

import (
	"context"

	"github.com/google/uuid"
	"github.com/teamgrid/teamgrid/internal/dtos/meeting_dto"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
)

type MeetingServiceContract interface {
	CreateMeeting(ctx context.Context, req meeting_dto.CreateMeetingRequest) (*meeting_dto.MeetingResponse, *app_error.AppError)
	GetMeeting(ctx context.Context, id uuid.UUID) (*meeting_dto.MeetingResponse, *app_error.AppError)
	UpdateMeeting(ctx context.Context, id uuid.UUID, req meeting_dto.UpdateMeetingRequest) (*meeting_dto.MeetingResponse, *app_error.AppError)
	RespondToMeeting(ctx context.Context, meetingID uuid.UUID, req meeting_dto.RespondToMeetingRequest) (*meeting_dto.MeetingResponse, *app_error.AppError)
	CancelMeeting(ctx context.Context, id uuid.UUID) *app_error.AppError
	GetCalendarEvents(ctx context.Context, req meeting_dto.CalendarRangeRequest) ([]meeting_dto.CalendarEventResponse, *app_error.AppError)
	GetUpcomingMeetings(ctx context.Context, count int) ([]meeting_dto.MeetingResponse, *app_error.AppError)
	ExportICal(ctx context.Context, id uuid.UUID) (string, *app_error.AppError)
}
