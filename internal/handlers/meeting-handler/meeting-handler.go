package meeting_handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/teamgrid/teamgrid/internal/dtos/meeting_dto"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
	"github.com/teamgrid/teamgrid/internal/handlers"
	"github.com/teamgrid/teamgrid/internal/middleware"
	meeting_service "github.com/teamgrid/teamgrid/internal/use-case/meeting-case"
	"github.com/teamgrid/teamgrid/state"
)

const defaultUpcomingCount = 10

type MeetingHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  meeting_service.MeetingServiceContract
}

func NewMeetingHandler(state *state.AppState) *MeetingHandler {
	return &MeetingHandler{
		State:    state,
		Validate: validator.New(),
		Service:  meeting_service.NewMeetingService(state),
	}
}

func (h *MeetingHandler) CreateMeeting(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req meeting_dto.CreateMeetingRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest(fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, svcErr := h.Service.CreateMeeting(r.Context(), req)
	if svcErr != nil {
		return svcErr
	}

	handlers.WriteData(w, http.StatusCreated, handlers.CreateResponse("meeting created", *resp, middleware.RequestIdFrom(r.Context())))
	return nil
}

func (h *MeetingHandler) GetMeeting(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	id, err := parseMeetingID(r)
	if err != nil {
		return err
	}

	resp, svcErr := h.Service.GetMeeting(r.Context(), id)
	if svcErr != nil {
		return svcErr
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("meeting fetched", *resp, middleware.RequestIdFrom(r.Context())))
	return nil
}

func (h *MeetingHandler) UpdateMeeting(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	id, err := parseMeetingID(r)
	if err != nil {
		return err
	}

	var req meeting_dto.UpdateMeetingRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest(fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, svcErr := h.Service.UpdateMeeting(r.Context(), id, req)
	if svcErr != nil {
		return svcErr
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("meeting updated", *resp, middleware.RequestIdFrom(r.Context())))
	return nil
}

func (h *MeetingHandler) RespondToMeeting(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	id, err := parseMeetingID(r)
	if err != nil {
		return err
	}

	var req meeting_dto.RespondToMeetingRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest(fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, svcErr := h.Service.RespondToMeeting(r.Context(), id, req)
	if svcErr != nil {
		return svcErr
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("response recorded", *resp, middleware.RequestIdFrom(r.Context())))
	return nil
}

func (h *MeetingHandler) CancelMeeting(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	id, err := parseMeetingID(r)
	if err != nil {
		return err
	}

	if svcErr := h.Service.CancelMeeting(r.Context(), id); svcErr != nil {
		return svcErr
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("meeting cancelled", struct{}{}, middleware.RequestIdFrom(r.Context())))
	return nil
}

func (h *MeetingHandler) GetCalendarEvents(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		return app_error.BadRequest("start must be RFC3339", "start")
	}
	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		return app_error.BadRequest("end must be RFC3339", "end")
	}

	req := meeting_dto.CalendarRangeRequest{StartUTC: start.UTC(), EndUTC: end.UTC()}
	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		employeeID, err := uuid.Parse(raw)
		if err != nil {
			return app_error.BadRequest("invalid employee id", "employee_id")
		}
		req.EmployeeID = &employeeID
	}

	resp, svcErr := h.Service.GetCalendarEvents(r.Context(), req)
	if svcErr != nil {
		return svcErr
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("calendar events fetched", resp, middleware.RequestIdFrom(r.Context())))
	return nil
}

func (h *MeetingHandler) GetUpcomingMeetings(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	count := defaultUpcomingCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return app_error.BadRequest("count must be a positive integer", "count")
		}
		count = parsed
	}

	resp, svcErr := h.Service.GetUpcomingMeetings(r.Context(), count)
	if svcErr != nil {
		return svcErr
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("upcoming meetings fetched", resp, middleware.RequestIdFrom(r.Context())))
	return nil
}

func (h *MeetingHandler) ExportICal(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	id, err := parseMeetingID(r)
	if err != nil {
		return err
	}

	ical, svcErr := h.Service.ExportICal(r.Context(), id)
	if svcErr != nil {
		return svcErr
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.ics", id))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(ical))
	return nil
}

func parseMeetingID(r *http.Request) (uuid.UUID, *app_error.AppError) {
	id, err := uuid.Parse(chi.URLParam(r, "meetingId"))
	if err != nil {
		return uuid.Nil, app_error.BadRequest("invalid meeting id", "meeting-id")
	}
	return id, nil
}
