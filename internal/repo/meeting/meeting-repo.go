package meeting_repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/teamgrid/teamgrid/internal/entity"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
	"github.com/teamgrid/teamgrid/state"
	"gorm.io/gorm"
)

type MeetingRepo struct {
	AppState *state.AppState
}

func NewMeetingRepo(appState *state.AppState) MeetingRepoContract {
	return &MeetingRepo{
		AppState: appState,
	}
}

func (r *MeetingRepo) CreateMeeting(ctx context.Context, meeting entity.Meeting, attendees []entity.MeetingAttendee, event entity.OutboxEvent) *app_error.AppError {
	err := r.AppState.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&meeting).Error; err != nil {
			return err
		}
		if len(attendees) > 0 {
			if err := tx.Create(&attendees).Error; err != nil {
				return err
			}
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return app_error.Internal("unexpected error occur when creating meeting", "db-create")
	}
	return nil
}

func (r *MeetingRepo) FindMeetingByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, *app_error.AppError) {
	var meeting entity.Meeting

	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", id).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("cannot find meeting", "meeting-id")
		}
		return nil, app_error.Internal("unexpected error occur when fetch meeting", "db-error")
	}
	return &meeting, nil
}

func (r *MeetingRepo) UpdateMeeting(ctx context.Context, meeting entity.Meeting) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", meeting.ID).Save(&meeting).Error; err != nil {
		return app_error.Internal("unexpected error occur when updating meeting", "db-update")
	}
	return nil
}

func (r *MeetingRepo) CancelMeeting(ctx context.Context, id uuid.UUID, at time.Time, event entity.OutboxEvent) *app_error.AppError {
	err := r.AppState.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Meeting{}).
			Where("id = ? AND status = ?", id, entity.MeetingScheduled).
			Updates(map[string]any{"status": entity.MeetingCancelled, "updated_at": at})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return app_error.Conflict("meeting is already cancelled", "meeting-status")
		}
		return app_error.Internal("unexpected error occur when cancelling meeting", "db-update")
	}
	return nil
}

func (r *MeetingRepo) FindAttendees(ctx context.Context, meetingID uuid.UUID) ([]entity.MeetingAttendee, *app_error.AppError) {
	var attendees []entity.MeetingAttendee

	if err := r.AppState.DB.WithContext(ctx).Where("meeting_id = ?", meetingID).Find(&attendees).Error; err != nil {
		return nil, app_error.Internal("unexpected error occur when fetching attendees", "db-list")
	}
	return attendees, nil
}

func (r *MeetingRepo) FindAttendeesByMeetingIDs(ctx context.Context, meetingIDs []uuid.UUID) ([]entity.MeetingAttendee, *app_error.AppError) {
	if len(meetingIDs) == 0 {
		return nil, nil
	}

	var attendees []entity.MeetingAttendee
	if err := r.AppState.DB.WithContext(ctx).Where("meeting_id IN ?", meetingIDs).Find(&attendees).Error; err != nil {
		return nil, app_error.Internal("unexpected error occur when batch fetching attendees", "db-batch")
	}
	return attendees, nil
}

func (r *MeetingRepo) FindAttendee(ctx context.Context, meetingID, employeeID uuid.UUID) (*entity.MeetingAttendee, *app_error.AppError) {
	var attendee entity.MeetingAttendee

	err := r.AppState.DB.WithContext(ctx).
		Where("meeting_id = ? AND employee_id = ?", meetingID, employeeID).
		First(&attendee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, app_error.Internal("unexpected error occur when fetching attendee", "db-error")
	}
	return &attendee, nil
}

func (r *MeetingRepo) UpdateAttendee(ctx context.Context, attendee entity.MeetingAttendee) *app_error.AppError {
	err := r.AppState.DB.WithContext(ctx).Model(&entity.MeetingAttendee{}).
		Where("meeting_id = ? AND employee_id = ?", attendee.MeetingID, attendee.EmployeeID).
		Updates(map[string]any{"response": attendee.Response, "responded_at": attendee.RespondedAt}).Error
	if err != nil {
		return app_error.Internal("unexpected error occur when updating attendee", "db-update")
	}
	return nil
}

// FindOverlapping returns meetings whose window overlaps [StartUTC, EndUTC),
// i.e. meeting.start < end AND meeting.end > start. With an employee filter
// the result is restricted to meetings the employee organizes or attends.
func (r *MeetingRepo) FindOverlapping(ctx context.Context, filter CalendarFilter) ([]entity.Meeting, *app_error.AppError) {
	var meetings []entity.Meeting

	query := r.AppState.DB.WithContext(ctx).Model(&entity.Meeting{}).
		Where("start_utc < ? AND end_utc > ?", filter.EndUTC, filter.StartUTC)

	if filter.EmployeeID != nil {
		query = query.Where(
			"organizer_id = ? OR id IN (?)",
			*filter.EmployeeID,
			r.AppState.DB.Model(&entity.MeetingAttendee{}).
				Select("meeting_id").
				Where("employee_id = ?", *filter.EmployeeID),
		)
	}

	if err := query.Order("start_utc").Find(&meetings).Error; err != nil {
		return nil, app_error.Internal("unexpected error occur when querying calendar range", "db-list")
	}
	return meetings, nil
}

func (r *MeetingRepo) FindUpcoming(ctx context.Context, after time.Time, limit int) ([]entity.Meeting, *app_error.AppError) {
	var meetings []entity.Meeting

	err := r.AppState.DB.WithContext(ctx).
		Where("start_utc >= ? AND status = ?", after, entity.MeetingScheduled).
		Order("start_utc").
		Limit(limit).
		Find(&meetings).Error
	if err != nil {
		return nil, app_error.Internal("unexpected error occur when fetching upcoming meetings", "db-list")
	}
	return meetings, nil
}
