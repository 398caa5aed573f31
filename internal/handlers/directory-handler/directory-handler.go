package directory_handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/teamgrid/teamgrid/internal/dtos/directory_dto"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
	"github.com/teamgrid/teamgrid/internal/handlers"
	"github.com/teamgrid/teamgrid/internal/middleware"
	directory_service "github.com/teamgrid/teamgrid/internal/use-case/directory-case"
	"github.com/teamgrid/teamgrid/state"
)

type DirectoryHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  directory_service.DirectoryServiceContract
}

func NewDirectoryHandler(state *state.AppState) *DirectoryHandler {
	validate := validator.New()
	_ = validate.RegisterValidation("ianatz", directory_dto.TimezoneValidator)
	return &DirectoryHandler{
		State:    state,
		Validate: validate,
		Service:  directory_service.NewDirectoryService(state),
	}
}

func (h *DirectoryHandler) ListEmployees(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var statusFilter *string
	if status := r.URL.Query().Get("status"); status != "" {
		statusFilter = &status
	}

	resp, err := h.Service.ListEmployees(r.Context(), statusFilter)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("employees listed", resp, middleware.RequestIdFrom(r.Context())))
	return nil
}

func (h *DirectoryHandler) GetEmployee(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	id, err := parseEmployeeID(r)
	if err != nil {
		return err
	}

	resp, svcErr := h.Service.GetEmployee(r.Context(), id)
	if svcErr != nil {
		return svcErr
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("employee fetched", *resp, middleware.RequestIdFrom(r.Context())))
	return nil
}

func (h *DirectoryHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req directory_dto.CreateEmployeeRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest(fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, svcErr := h.Service.CreateEmployee(r.Context(), req)
	if svcErr != nil {
		return svcErr
	}

	handlers.WriteData(w, http.StatusCreated, handlers.CreateResponse("employee created", *resp, middleware.RequestIdFrom(r.Context())))
	return nil
}

func (h *DirectoryHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	id, err := parseEmployeeID(r)
	if err != nil {
		return err
	}

	var req directory_dto.UpdateEmployeeRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest(fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, svcErr := h.Service.UpdateEmployee(r.Context(), id, req)
	if svcErr != nil {
		return svcErr
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("employee updated", *resp, middleware.RequestIdFrom(r.Context())))
	return nil
}

func (h *DirectoryHandler) UpdatePresence(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	id, err := parseEmployeeID(r)
	if err != nil {
		return err
	}

	var req directory_dto.UpdatePresenceRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest(fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, svcErr := h.Service.UpdatePresence(r.Context(), id, req.Presence)
	if svcErr != nil {
		return svcErr
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("presence updated", *resp, middleware.RequestIdFrom(r.Context())))
	return nil
}

func (h *DirectoryHandler) GetPresence(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	id, err := parseEmployeeID(r)
	if err != nil {
		return err
	}

	resp, svcErr := h.Service.GetPresence(r.Context(), id)
	if svcErr != nil {
		return svcErr
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("presence fetched", *resp, middleware.RequestIdFrom(r.Context())))
	return nil
}

func parseEmployeeID(r *http.Request) (uuid.UUID, *app_error.AppError) {
	id, err := uuid.Parse(chi.URLParam(r, "employeeId"))
	if err != nil {
		return uuid.Nil, app_error.BadRequest("invalid employee id", "employee-id")
	}
	return id, nil
}
