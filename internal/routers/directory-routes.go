package routers

import (
	"github.com/go-chi/chi/v5"
	"github.com/teamgrid/teamgrid/internal/handlers"
	directory_handler "github.com/teamgrid/teamgrid/internal/handlers/directory-handler"
	"github.com/teamgrid/teamgrid/state"
)

func DirectoryRouter(r chi.Router, state *state.AppState) {
	directoryHandler := directory_handler.NewDirectoryHandler(state)

	r.Get("/api/v1/employees", handlers.WrapHandler(directoryHandler.ListEmployees))
	r.Post("/api/v1/employees", handlers.WrapHandler(directoryHandler.CreateEmployee))
	r.Get("/api/v1/employees/{employeeId}", handlers.WrapHandler(directoryHandler.GetEmployee))
	r.Patch("/api/v1/employees/{employeeId}", handlers.WrapHandler(directoryHandler.UpdateEmployee))
	r.Get("/api/v1/employees/{employeeId}/presence", handlers.WrapHandler(directoryHandler.GetPresence))
	r.Put("/api/v1/employees/{employeeId}/presence", handlers.WrapHandler(directoryHandler.UpdatePresence))
}
