package chat_service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/teamgrid/teamgrid/internal/dtos/chat_dto"
	"github.com/teamgrid/teamgrid/internal/entity"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
	conversation_repo "github.com/teamgrid/teamgrid/internal/repo/conversation"
	directory_service "github.com/teamgrid/teamgrid/internal/use-case/directory-case"
	"github.com/teamgrid/teamgrid/state"
)

type ChatService struct {
	AppState  *state.AppState
	Repo      conversation_repo.ConversationRepoContract
	Directory directory_service.DirectoryServiceContract
	Now       func() time.Time
}

func NewChatService(appState *state.AppState) ChatServiceContract {
	return &ChatService{
		AppState:  appState,
		Repo:      conversation_repo.NewConversationRepo(appState),
		Directory: directory_service.NewDirectoryService(appState),
		Now:       time.Now,
	}
}

func (s *ChatService) GetChannelsForEmployee(ctx context.Context, employeeID uuid.UUID) ([]chat_dto.ChannelResponse, *app_error.AppError) {
	conversations, err := s.Repo.FindConversationsForEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	conversationIDs := lo.Map(conversations, func(c entity.Conversation, _ int) uuid.UUID { return c.ID })
	receipts, err := s.Repo.FindReceipts(ctx, employeeID, conversationIDs)
	if err != nil {
		return nil, err
	}
	receiptByConversation := lo.Associate(receipts, func(r entity.ChannelReadReceipt) (uuid.UUID, entity.ChannelReadReceipt) {
		return r.ConversationID, r
	})

	responses := make([]chat_dto.ChannelResponse, 0, len(conversations))
	for _, conversation := range conversations {
		var after *time.Time
		if receipt, ok := receiptByConversation[conversation.ID]; ok {
			after = &receipt.LastReadAt
		}

		unread, err := s.Repo.CountUnread(ctx, conversation.ID, employeeID, after)
		if err != nil {
			return nil, err
		}

		resp := toChannelResponse(conversation)
		resp.UnreadCount = unread
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *ChatService) GetChannel(ctx context.Context, conversationID uuid.UUID) (*chat_dto.ChannelResponse, *app_error.AppError) {
	conversation, err := s.Repo.FindConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	resp := toChannelResponse(*conversation)
	return &resp, nil
}

func (s *ChatService) GetMessages(ctx context.Context, conversationID uuid.UUID) ([]chat_dto.MessageResponse, *app_error.AppError) {
	if _, err := s.Repo.FindConversationByID(ctx, conversationID); err != nil {
		return nil, err
	}

	messages, err := s.Repo.FindMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	// Sender names come from one batch directory lookup across the thread.
	senderIDs := lo.Map(messages, func(m entity.ConversationMessage, _ int) uuid.UUID {
		return m.SenderEmployeeID
	})
	senders, err := s.Directory.GetEmployeeBatch(ctx, senderIDs)
	if err != nil {
		return nil, err
	}

	return lo.Map(messages, func(m entity.ConversationMessage, _ int) chat_dto.MessageResponse {
		return toMessageResponse(m, senders)
	}), nil
}

func (s *ChatService) SendMessage(ctx context.Context, conversationID uuid.UUID, req chat_dto.SendMessageRequest) (*chat_dto.MessageResponse, *app_error.AppError) {
	if _, err := s.Repo.FindConversationByID(ctx, conversationID); err != nil {
		return nil, err
	}

	participant, err := s.Repo.FindParticipant(ctx, conversationID, req.SenderID)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, app_error.NotAParticipant("sender_id")
	}

	message := entity.ConversationMessage{
		ID:               uuid.New(),
		ConversationID:   conversationID,
		SenderEmployeeID: req.SenderID,
		Content:          req.Content,
		SentAt:           s.Now(),
	}
	if err := s.Repo.AppendMessage(ctx, message); err != nil {
		return nil, err
	}

	senders, err := s.Directory.GetEmployeeBatch(ctx, []uuid.UUID{req.SenderID})
	if err != nil {
		return nil, err
	}

	resp := toMessageResponse(message, senders)
	return &resp, nil
}

func (s *ChatService) MarkAsRead(ctx context.Context, conversationID, employeeID uuid.UUID) *app_error.AppError {
	if _, err := s.Repo.FindConversationByID(ctx, conversationID); err != nil {
		return err
	}

	participant, err := s.Repo.FindParticipant(ctx, conversationID, employeeID)
	if err != nil {
		return err
	}
	if participant == nil {
		return app_error.NotAParticipant("employee_id")
	}

	return s.Repo.UpsertReceipt(ctx, entity.ChannelReadReceipt{
		ConversationID: conversationID,
		EmployeeID:     employeeID,
		LastReadAt:     s.Now(),
	})
}

func (s *ChatService) CreateConversation(ctx context.Context, req chat_dto.CreateConversationRequest) (*chat_dto.ChannelResponse, *app_error.AppError) {
	now := s.Now()
	conversation := entity.Conversation{
		ID:                  uuid.New(),
		Subject:             req.Subject,
		ChannelType:         entity.ChannelAdHoc,
		Status:              entity.ConversationActive,
		CreatedByEmployeeID: req.CreatorID,
		CreatedAt:           now,
	}

	var seed *entity.ConversationMessage
	if req.InitialMessage != nil && *req.InitialMessage != "" {
		seed = &entity.ConversationMessage{
			ID:               uuid.New(),
			ConversationID:   conversation.ID,
			SenderEmployeeID: req.CreatorID,
			Content:          *req.InitialMessage,
			SentAt:           now,
		}
		conversation.LastMessageAt = &now
	}

	participants := buildParticipants(conversation.ID, req.CreatorID, req.ParticipantIDs, now)
	if err := s.Repo.CreateConversation(ctx, conversation, participants, seed); err != nil {
		return nil, err
	}

	resp := toChannelResponse(conversation)
	return &resp, nil
}

func (s *ChatService) CreateChannel(ctx context.Context, req chat_dto.CreateChannelRequest) (*chat_dto.ChannelResponse, *app_error.AppError) {
	channelType, parseErr := entity.ParseChannelType(req.ChannelType)
	if parseErr != nil {
		return nil, app_error.InvalidEnum(parseErr.Error(), "channel_type")
	}

	now := s.Now()
	conversation := entity.Conversation{
		ID:                  uuid.New(),
		Subject:             req.Name,
		Icon:                req.Icon,
		ChannelType:         channelType,
		Status:              entity.ConversationActive,
		CreatedByEmployeeID: req.CreatorID,
		CreatedAt:           now,
	}

	participants := buildParticipants(conversation.ID, req.CreatorID, req.ParticipantIDs, now)
	if err := s.Repo.CreateConversation(ctx, conversation, participants, nil); err != nil {
		return nil, err
	}

	resp := toChannelResponse(conversation)
	return &resp, nil
}

// buildParticipants dedupes the requested set; the creator is always a
// participant regardless of the request.
func buildParticipants(conversationID, creatorID uuid.UUID, participantIDs []uuid.UUID, joinedAt time.Time) []entity.ConversationParticipant {
	ids := lo.Uniq(append([]uuid.UUID{creatorID}, participantIDs...))
	return lo.Map(ids, func(id uuid.UUID, _ int) entity.ConversationParticipant {
		return entity.ConversationParticipant{
			ConversationID: conversationID,
			EmployeeID:     id,
			JoinedAt:       joinedAt,
		}
	})
}

func toChannelResponse(c entity.Conversation) chat_dto.ChannelResponse {
	return chat_dto.ChannelResponse{
		ID:            c.ID.String(),
		Subject:       c.Subject,
		Icon:          c.Icon,
		ChannelType:   string(c.ChannelType),
		Status:        string(c.Status),
		CreatedBy:     c.CreatedByEmployeeID.String(),
		CreatedAt:     c.CreatedAt,
		LastMessageAt: c.LastMessageAt,
	}
}

func toMessageResponse(m entity.ConversationMessage, senders map[uuid.UUID]entity.Employee) chat_dto.MessageResponse {
	senderName := ""
	if sender, ok := senders[m.SenderEmployeeID]; ok {
		senderName = sender.DisplayName()
	}
	return chat_dto.MessageResponse{
		ID:             m.ID.String(),
		ConversationID: m.ConversationID.String(),
		SenderID:       m.SenderEmployeeID.String(),
		SenderName:     senderName,
		Content:        m.Content,
		SentAt:         m.SentAt,
	}
}
