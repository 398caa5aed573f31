package feed_handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
	"github.com/teamgrid/teamgrid/internal/handlers"
	"github.com/teamgrid/teamgrid/internal/middleware"
	feed_service "github.com/teamgrid/teamgrid/internal/use-case/feed-case"
	"github.com/teamgrid/teamgrid/state"
)

const defaultFeedCount = 20

type FeedHandler struct {
	State   *state.AppState
	Service feed_service.FeedServiceContract
}

func NewFeedHandler(state *state.AppState) *FeedHandler {
	return &FeedHandler{
		State:   state,
		Service: feed_service.NewFeedService(state),
	}
}

func (h *FeedHandler) GetActivityFeed(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	employeeID, err := uuid.Parse(chi.URLParam(r, "employeeId"))
	if err != nil {
		return app_error.BadRequest("invalid employee id", "employee-id")
	}

	count := defaultFeedCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return app_error.BadRequest("count must be a positive integer", "count")
		}
		count = parsed
	}

	resp, svcErr := h.Service.GetActivityFeed(r.Context(), employeeID, count)
	if svcErr != nil {
		return svcErr
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("activity feed fetched", resp, middleware.RequestIdFrom(r.Context())))
	return nil
}
