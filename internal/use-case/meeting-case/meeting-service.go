package meeting_service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/teamgrid/teamgrid/config"
	"github.com/teamgrid/teamgrid/internal/dtos/meeting_dto"
	"github.com/teamgrid/teamgrid/internal/entity"
	"github.com/teamgrid/teamgrid/internal/events"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
	meeting_repo "github.com/teamgrid/teamgrid/internal/repo/meeting"
	directory_service "github.com/teamgrid/teamgrid/internal/use-case/directory-case"
	"github.com/teamgrid/teamgrid/state"
)

type MeetingService struct {
	AppState  *state.AppState
	Repo      meeting_repo.MeetingRepoContract
	Directory directory_service.DirectoryServiceContract
	Now       func() time.Time
	ProductID string
	UIDDomain string
}

func NewMeetingService(appState *state.AppState) MeetingServiceContract {
	return &MeetingService{
		AppState:  appState,
		Repo:      meeting_repo.NewMeetingRepo(appState),
		Directory: directory_service.NewDirectoryService(appState),
		Now:       time.Now,
		ProductID: config.Conf.CALENDAR.ProductID,
		UIDDomain: config.Conf.CALENDAR.UIDDomain,
	}
}

func (s *MeetingService) CreateMeeting(ctx context.Context, req meeting_dto.CreateMeetingRequest) (*meeting_dto.MeetingResponse, *app_error.AppError) {
	if !req.EndUTC.After(req.StartUTC) {
		return nil, app_error.BadRequest("meeting end must be after start", "end_utc")
	}

	// The organizer must resolve; the booked event carries their email.
	organizer, err := s.Directory.GetEmployee(ctx, req.OrganizerID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	attendeeIDs := lo.Uniq(req.AttendeeIDs)
	meeting := entity.Meeting{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		StartUTC:    req.StartUTC.UTC(),
		EndUTC:      req.EndUTC.UTC(),
		Location:    req.Location,
		Status:      entity.MeetingScheduled,
		OrganizerID: req.OrganizerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	attendees := lo.Map(attendeeIDs, func(id uuid.UUID, _ int) entity.MeetingAttendee {
		return entity.MeetingAttendee{
			MeetingID:  meeting.ID,
			EmployeeID: id,
			Response:   entity.ResponsePending,
		}
	})

	// One batch lookup resolves every attendee email for the event payload.
	resolved, err := s.Directory.GetEmployeeBatch(ctx, attendeeIDs)
	if err != nil {
		return nil, err
	}

	booked := events.MeetingBooked{
		MeetingID:      meeting.ID,
		Title:          meeting.Title,
		StartUTC:       meeting.StartUTC,
		EndUTC:         meeting.EndUTC,
		Location:       meeting.Location,
		OrganizerEmail: organizer.Email,
		OrganizerName:  organizer.DisplayName,
		AttendeeEmails: attendeeEmails(attendeeIDs, resolved),
		OccurredAt:     now,
	}
	event, evtErr := s.outboxEvent(events.TypeMeetingBooked, booked, now)
	if evtErr != nil {
		return nil, evtErr
	}

	if err := s.Repo.CreateMeeting(ctx, meeting, attendees, event); err != nil {
		return nil, err
	}

	resp := toMeetingResponse(meeting, attendees, resolved)
	return &resp, nil
}

func (s *MeetingService) GetMeeting(ctx context.Context, id uuid.UUID) (*meeting_dto.MeetingResponse, *app_error.AppError) {
	meeting, err := s.Repo.FindMeetingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	attendees, err := s.Repo.FindAttendees(ctx, id)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveAttendees(ctx, attendees)
	if err != nil {
		return nil, err
	}

	resp := toMeetingResponse(*meeting, attendees, resolved)
	return &resp, nil
}

func (s *MeetingService) UpdateMeeting(ctx context.Context, id uuid.UUID, req meeting_dto.UpdateMeetingRequest) (*meeting_dto.MeetingResponse, *app_error.AppError) {
	meeting, err := s.Repo.FindMeetingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Patch semantics: only supplied fields change; the attendee set is
	// never touched here.
	if req.Title != nil {
		meeting.Title = *req.Title
	}
	if req.Description != nil {
		meeting.Description = req.Description
	}
	if req.StartUTC != nil {
		meeting.StartUTC = req.StartUTC.UTC()
	}
	if req.EndUTC != nil {
		meeting.EndUTC = req.EndUTC.UTC()
	}
	if req.Location != nil {
		meeting.Location = req.Location
	}
	if !meeting.EndUTC.After(meeting.StartUTC) {
		return nil, app_error.BadRequest("meeting end must be after start", "end_utc")
	}
	meeting.UpdatedAt = s.Now()

	if err := s.Repo.UpdateMeeting(ctx, *meeting); err != nil {
		return nil, err
	}

	attendees, err := s.Repo.FindAttendees(ctx, id)
	if err != nil {
		return nil, err
	}
	resolved, err := s.resolveAttendees(ctx, attendees)
	if err != nil {
		return nil, err
	}

	resp := toMeetingResponse(*meeting, attendees, resolved)
	return &resp, nil
}

func (s *MeetingService) RespondToMeeting(ctx context.Context, meetingID uuid.UUID, req meeting_dto.RespondToMeetingRequest) (*meeting_dto.MeetingResponse, *app_error.AppError) {
	response, parseErr := entity.ParseAttendeeResponse(req.Response)
	if parseErr != nil {
		return nil, app_error.InvalidEnum(parseErr.Error(), "response")
	}
	if response == entity.ResponsePending {
		return nil, app_error.BadRequest("response must be accepted or declined", "response")
	}

	meeting, err := s.Repo.FindMeetingByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if meeting.Status == entity.MeetingCancelled {
		return nil, app_error.Conflict("cannot respond to a cancelled meeting", "meeting-status")
	}

	attendee, err := s.Repo.FindAttendee(ctx, meetingID, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if attendee == nil {
		return nil, app_error.NotAnAttendee("employee_id")
	}

	// Responses are re-entrant: a later response overwrites the earlier
	// one along with its timestamp.
	now := s.Now()
	attendee.Response = response
	attendee.RespondedAt = &now
	if err := s.Repo.UpdateAttendee(ctx, *attendee); err != nil {
		return nil, err
	}

	return s.GetMeeting(ctx, meetingID)
}

func (s *MeetingService) CancelMeeting(ctx context.Context, id uuid.UUID) *app_error.AppError {
	meeting, err := s.Repo.FindMeetingByID(ctx, id)
	if err != nil {
		return err
	}

	attendees, err := s.Repo.FindAttendees(ctx, id)
	if err != nil {
		return err
	}
	resolved, err := s.resolveAttendees(ctx, attendees)
	if err != nil {
		return err
	}

	now := s.Now()
	cancelled := events.MeetingCancelled{
		MeetingID: meeting.ID,
		Title:     meeting.Title,
		StartUTC:  meeting.StartUTC,
		AttendeeEmails: attendeeEmails(lo.Map(attendees, func(a entity.MeetingAttendee, _ int) uuid.UUID {
			return a.EmployeeID
		}), resolved),
		OccurredAt: now,
	}
	event, evtErr := s.outboxEvent(events.TypeMeetingCancelled, cancelled, now)
	if evtErr != nil {
		return evtErr
	}

	return s.Repo.CancelMeeting(ctx, id, now, event)
}

func (s *MeetingService) GetCalendarEvents(ctx context.Context, req meeting_dto.CalendarRangeRequest) ([]meeting_dto.CalendarEventResponse, *app_error.AppError) {
	meetings, err := s.Repo.FindOverlapping(ctx, meeting_repo.CalendarFilter{
		StartUTC:   req.StartUTC,
		EndUTC:     req.EndUTC,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		return nil, err
	}

	// One batch lookup resolves every organizer name across the matched
	// range, not one per row.
	organizerIDs := lo.Map(meetings, func(m entity.Meeting, _ int) uuid.UUID { return m.OrganizerID })
	organizers, err := s.Directory.GetEmployeeBatch(ctx, organizerIDs)
	if err != nil {
		return nil, err
	}

	return lo.Map(meetings, func(m entity.Meeting, _ int) meeting_dto.CalendarEventResponse {
		organizerName := ""
		if organizer, ok := organizers[m.OrganizerID]; ok {
			organizerName = organizer.DisplayName()
		}
		return meeting_dto.CalendarEventResponse{
			MeetingID:     m.ID.String(),
			Title:         m.Title,
			StartUTC:      m.StartUTC,
			EndUTC:        m.EndUTC,
			Location:      m.Location,
			Status:        string(m.Status),
			OrganizerID:   m.OrganizerID.String(),
			OrganizerName: organizerName,
		}
	}), nil
}

func (s *MeetingService) GetUpcomingMeetings(ctx context.Context, count int) ([]meeting_dto.MeetingResponse, *app_error.AppError) {
	meetings, err := s.Repo.FindUpcoming(ctx, s.Now(), count)
	if err != nil {
		return nil, err
	}

	meetingIDs := lo.Map(meetings, func(m entity.Meeting, _ int) uuid.UUID { return m.ID })
	attendees, err := s.Repo.FindAttendeesByMeetingIDs(ctx, meetingIDs)
	if err != nil {
		return nil, err
	}

	// Names for the whole result set come from one batch lookup.
	resolved, err := s.resolveAttendees(ctx, attendees)
	if err != nil {
		return nil, err
	}

	attendeesByMeeting := lo.GroupBy(attendees, func(a entity.MeetingAttendee) uuid.UUID {
		return a.MeetingID
	})

	return lo.Map(meetings, func(m entity.Meeting, _ int) meeting_dto.MeetingResponse {
		return toMeetingResponse(m, attendeesByMeeting[m.ID], resolved)
	}), nil
}

func (s *MeetingService) ExportICal(ctx context.Context, id uuid.UUID) (string, *app_error.AppError) {
	meeting, err := s.Repo.FindMeetingByID(ctx, id)
	if err != nil {
		return "", err
	}

	attendees, err := s.Repo.FindAttendees(ctx, id)
	if err != nil {
		return "", err
	}

	ids := lo.Map(attendees, func(a entity.MeetingAttendee, _ int) uuid.UUID { return a.EmployeeID })
	resolved, err := s.Directory.GetEmployeeBatch(ctx, append(ids, meeting.OrganizerID))
	if err != nil {
		return "", err
	}

	return s.buildICal(*meeting, attendees, resolved), nil
}

func (s *MeetingService) resolveAttendees(ctx context.Context, attendees []entity.MeetingAttendee) (map[uuid.UUID]entity.Employee, *app_error.AppError) {
	ids := lo.Map(attendees, func(a entity.MeetingAttendee, _ int) uuid.UUID {
		return a.EmployeeID
	})
	return s.Directory.GetEmployeeBatch(ctx, ids)
}

func (s *MeetingService) outboxEvent(eventType string, payload any, now time.Time) (entity.OutboxEvent, *app_error.AppError) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return entity.OutboxEvent{}, app_error.Internal("failed to encode domain event", "event")
	}
	return entity.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   raw,
		CreatedAt: now,
	}, nil
}

func attendeeEmails(ids []uuid.UUID, resolved map[uuid.UUID]entity.Employee) []string {
	emails := make([]string, 0, len(ids))
	for _, id := range ids {
		if employee, ok := resolved[id]; ok {
			emails = append(emails, employee.Email)
		}
	}
	return emails
}

func toMeetingResponse(meeting entity.Meeting, attendees []entity.MeetingAttendee, resolved map[uuid.UUID]entity.Employee) meeting_dto.MeetingResponse {
	views := lo.Map(attendees, func(a entity.MeetingAttendee, _ int) meeting_dto.AttendeeView {
		view := meeting_dto.AttendeeView{
			EmployeeID:  a.EmployeeID.String(),
			Response:    string(a.Response),
			RespondedAt: a.RespondedAt,
		}
		if employee, ok := resolved[a.EmployeeID]; ok {
			view.DisplayName = employee.DisplayName()
			view.Email = employee.Email
		}
		return view
	})

	return meeting_dto.MeetingResponse{
		ID:          meeting.ID.String(),
		Title:       meeting.Title,
		Description: meeting.Description,
		StartUTC:    meeting.StartUTC,
		EndUTC:      meeting.EndUTC,
		Location:    meeting.Location,
		Status:      string(meeting.Status),
		OrganizerID: meeting.OrganizerID.String(),
		Attendees:   views,
		CreatedAt:   meeting.CreatedAt,
		UpdatedAt:   meeting.UpdatedAt,
	}
}
