package routers

import (
	"github.com/go-chi/chi/v5"
	"github.com/teamgrid/teamgrid/internal/handlers"
	meeting_handler "github.com/teamgrid/teamgrid/internal/handlers/meeting-handler"
	"github.com/teamgrid/teamgrid/state"
)

func MeetingRouter(r chi.Router, state *state.AppState) {
	meetingHandler := meeting_handler.NewMeetingHandler(state)

	r.Get("/api/v1/meetings/upcoming", handlers.WrapHandler(meetingHandler.GetUpcomingMeetings))
	r.Get("/api/v1/meetings/calendar", handlers.WrapHandler(meetingHandler.GetCalendarEvents))
	r.Post("/api/v1/meetings", handlers.WrapHandler(meetingHandler.CreateMeeting))
	r.Get("/api/v1/meetings/{meetingId}", handlers.WrapHandler(meetingHandler.GetMeeting))
	r.Patch("/api/v1/meetings/{meetingId}", handlers.WrapHandler(meetingHandler.UpdateMeeting))
	r.Put("/api/v1/meetings/{meetingId}/response", handlers.WrapHandler(meetingHandler.RespondToMeeting))
	r.Post("/api/v1/meetings/{meetingId}/cancel", handlers.WrapHandler(meetingHandler.CancelMeeting))
	r.Get("/api/v1/meetings/{meetingId}/ical", handlers.WrapHandler(meetingHandler.ExportICal))
}
