package routers

import (
	"github.com/go-chi/chi/v5"
	"github.com/teamgrid/teamgrid/internal/handlers"
	chat_handler "github.com/teamgrid/teamgrid/internal/handlers/chat-handler"
	"github.com/teamgrid/teamgrid/state"
)

func ChatRouter(r chi.Router, state *state.AppState) {
	chatHandler := chat_handler.NewChatHandler(state)

	r.Get("/api/v1/employees/{employeeId}/channels", handlers.WrapHandler(chatHandler.GetChannelsForEmployee))
	r.Post("/api/v1/conversations", handlers.WrapHandler(chatHandler.CreateConversation))
	r.Post("/api/v1/channels", handlers.WrapHandler(chatHandler.CreateChannel))
	r.Get("/api/v1/channels/{channelId}", handlers.WrapHandler(chatHandler.GetChannel))
	r.Get("/api/v1/channels/{channelId}/messages", handlers.WrapHandler(chatHandler.GetMessages))
	r.Post("/api/v1/channels/{channelId}/messages", handlers.WrapHandler(chatHandler.SendMessage))
	r.Post("/api/v1/channels/{channelId}/read", handlers.WrapHandler(chatHandler.MarkAsRead))
}
