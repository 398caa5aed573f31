package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/teamgrid/teamgrid/internal/middleware"
	"github.com/teamgrid/teamgrid/internal/websocket"
	"github.com/teamgrid/teamgrid/state"
)

func NewRouter(state *state.AppState, presence *websocket.PresenceHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestId)
	DirectoryRouter(r, state)
	MeetingRouter(r, state)
	ChatRouter(r, state)
	FeedRouter(r, state)
	r.Get("/ws/presence", presence.ServeHTTP)
	r.Get("/ws/presence/stats", presence.Stats)
	return r
}
