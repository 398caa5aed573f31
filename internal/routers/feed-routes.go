package routers

import (
	"github.com/go-chi/chi/v5"
	"github.com/teamgrid/teamgrid/internal/handlers"
	feed_handler "github.com/teamgrid/teamgrid/internal/handlers/feed-handler"
	"github.com/teamgrid/teamgrid/state"
)

func FeedRouter(r chi.Router, state *state.AppState) {
	feedHandler := feed_handler.NewFeedHandler(state)

	r.Get("/api/v1/employees/{employeeId}/feed", handlers.WrapHandler(feedHandler.GetActivityFeed))
}
