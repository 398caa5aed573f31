package chat_service

import (
	"context"

	"github.com/google/uuid"
	"github.com/teamgrid/teamgrid/internal/dtos/chat_dto"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
)

type ChatServiceContract interface {
	GetChannelsForEmployee(ctx context.Context, employeeID uuid.UUID) ([]chat_dto.ChannelResponse, *app_error.AppError)
	GetChannel(ctx context.Context, conversationID uuid.UUID) (*chat_dto.ChannelResponse, *app_error.AppError)
	GetMessages(ctx context.Context, conversationID uuid.UUID) ([]chat_dto.MessageResponse, *app_error.AppError)
	SendMessage(ctx context.Context, conversationID uuid.UUID, req chat_dto.SendMessageRequest) (*chat_dto.MessageResponse, *app_error.AppError)
	MarkAsRead(ctx context.Context, conversationID, employeeID uuid.UUID) *app_error.AppError
	CreateConversation(ctx context.Context, req chat_dto.CreateConversationRequest) (*chat_dto.ChannelResponse, *app_error.AppError)
	CreateChannel(ctx context.Context, req chat_dto.CreateChannelRequest) (*chat_dto.ChannelResponse, *app_error.AppError)
}
