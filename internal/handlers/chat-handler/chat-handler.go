package chat_handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/teamgrid/teamgrid/internal/dtos/chat_dto"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
	"github.com/teamgrid/teamgrid/internal/handlers"
	"github.com/teamgrid/teamgrid/internal/middleware"
	chat_service "github.com/teamgrid/teamgrid/internal/use-case/chat-case"
	"github.com/teamgrid/teamgrid/state"
)

type ChatHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  chat_service.ChatServiceContract
}

func NewChatHandler(state *state.AppState) *ChatHandler {
	return &ChatHandler{
		State:    state,
		Validate: validator.New(),
		Service:  chat_service.NewChatService(state),
	}
}

func (h *ChatHandler) GetChannelsForEmployee(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	employeeID, err := uuid.Parse(chi.URLParam(r, "employeeId"))
	if err != nil {
		return app_error.BadRequest("invalid employee id", "employee-id")
	}

	resp, svcErr := h.Service.GetChannelsForEmployee(r.Context(), employeeID)
	if svcErr != nil {
		return svcErr
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("channels listed", resp, middleware.RequestIdFrom(r.Context())))
	return nil
}

func (h *ChatHandler) GetChannel(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	channelID, err := parseChannelID(r)
	if err != nil {
		return err
	}

	resp, svcErr := h.Service.GetChannel(r.Context(), channelID)
	if svcErr != nil {
		return svcErr
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("channel fetched", *resp, middleware.RequestIdFrom(r.Context())))
	return nil
}

func (h *ChatHandler) GetMessages(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	channelID, err := parseChannelID(r)
	if err != nil {
		return err
	}

	resp, svcErr := h.Service.GetMessages(r.Context(), channelID)
	if svcErr != nil {
		return svcErr
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("messages fetched", resp, middleware.RequestIdFrom(r.Context())))
	return nil
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	channelID, err := parseChannelID(r)
	if err != nil {
		return err
	}

	var req chat_dto.SendMessageRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest(fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, svcErr := h.Service.SendMessage(r.Context(), channelID, req)
	if svcErr != nil {
		return svcErr
	}

	handlers.WriteData(w, http.StatusCreated, handlers.CreateResponse("message sent", *resp, middleware.RequestIdFrom(r.Context())))
	return nil
}

func (h *ChatHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	channelID, err := parseChannelID(r)
	if err != nil {
		return err
	}

	var req chat_dto.MarkAsReadRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest(fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	if svcErr := h.Service.MarkAsRead(r.Context(), channelID, req.EmployeeID); svcErr != nil {
		return svcErr
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("channel marked as read", struct{}{}, middleware.RequestIdFrom(r.Context())))
	return nil
}

func (h *ChatHandler) CreateConversation(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req chat_dto.CreateConversationRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest(fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, svcErr := h.Service.CreateConversation(r.Context(), req)
	if svcErr != nil {
		return svcErr
	}

	handlers.WriteData(w, http.StatusCreated, handlers.CreateResponse("conversation created", *resp, middleware.RequestIdFrom(r.Context())))
	return nil
}

func (h *ChatHandler) CreateChannel(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req chat_dto.CreateChannelRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest(fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, svcErr := h.Service.CreateChannel(r.Context(), req)
	if svcErr != nil {
		return svcErr
	}

	handlers.WriteData(w, http.StatusCreated, handlers.CreateResponse("channel created", *resp, middleware.RequestIdFrom(r.Context())))
	return nil
}

func parseChannelID(r *http.Request) (uuid.UUID, *app_error.AppError) {
	id, err := uuid.Parse(chi.URLParam(r, "channelId"))
	if err != nil {
		return uuid.Nil, app_error.BadRequest("invalid channel id", "channel-id")
	}
	return id, nil
}
