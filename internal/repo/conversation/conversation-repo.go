package conversation_repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/teamgrid/teamgrid/internal/entity"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
	"github.com/teamgrid/teamgrid/state"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConversationRepo struct {
	AppState *state.AppState
}

func NewConversationRepo(appState *state.AppState) ConversationRepoContract {
	return &ConversationRepo{
		AppState: appState,
	}
}

func (r *ConversationRepo) CreateConversation(ctx context.Context, conversation entity.Conversation, participants []entity.ConversationParticipant, seed *entity.ConversationMessage) *app_error.AppError {
	err := r.AppState.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&conversation).Error; err != nil {
			return err
		}
		if len(participants) > 0 {
			if err := tx.Create(&participants).Error; err != nil {
				return err
			}
		}
		if seed != nil {
			if err := tx.Create(seed).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return app_error.Internal("unexpected error occur when creating conversation", "db-create")
	}
	return nil
}

func (r *ConversationRepo) FindConversationByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, *app_error.AppError) {
	var conversation entity.Conversation

	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", id).First(&conversation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("cannot find conversation", "conversation-id")
		}
		return nil, app_error.Internal("unexpected error occur when fetch conversation", "db-error")
	}
	return &conversation, nil
}

func (r *ConversationRepo) FindConversationsForEmployee(ctx context.Context, employeeID uuid.UUID) ([]entity.Conversation, *app_error.AppError) {
	var conversations []entity.Conversation

	err := r.AppState.DB.WithContext(ctx).
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.employee_id = ?", employeeID).
		Order("conversations.last_message_at DESC NULLS LAST").
		Find(&conversations).Error
	if err != nil {
		return nil, app_error.Internal("unexpected error occur when listing conversations", "db-list")
	}
	return conversations, nil
}

func (r *ConversationRepo) FindParticipant(ctx context.Context, conversationID, employeeID uuid.UUID) (*entity.ConversationParticipant, *app_error.AppError) {
	var participant entity.ConversationParticipant

	err := r.AppState.DB.WithContext(ctx).
		Where("conversation_id = ? AND employee_id = ?", conversationID, employeeID).
		First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, app_error.Internal("unexpected error occur when fetching participant", "db-error")
	}
	return &participant, nil
}

func (r *ConversationRepo) FindMessages(ctx context.Context, conversationID uuid.UUID) ([]entity.ConversationMessage, *app_error.AppError) {
	var messages []entity.ConversationMessage

	err := r.AppState.DB.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sent_at").
		Find(&messages).Error
	if err != nil {
		return nil, app_error.Internal("unexpected error occur when fetching messages", "db-list")
	}
	return messages, nil
}

func (r *ConversationRepo) FindRecentMessagesForEmployee(ctx context.Context, employeeID uuid.UUID, limit int) ([]entity.ConversationMessage, *app_error.AppError) {
	var messages []entity.ConversationMessage

	err := r.AppState.DB.WithContext(ctx).
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversation_messages.conversation_id").
		Where("cp.employee_id = ?", employeeID).
		Order("conversation_messages.sent_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, app_error.Internal("unexpected error occur when fetching recent messages", "db-list")
	}
	return messages, nil
}

func (r *ConversationRepo) AppendMessage(ctx context.Context, message entity.ConversationMessage) *app_error.AppError {
	err := r.AppState.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Conversation{}).
			Where("id = ?", message.ConversationID).
			Update("last_message_at", message.SentAt).Error
	})
	if err != nil {
		return app_error.Internal("unexpected error occur when appending message", "db-create")
	}
	return nil
}

// CountUnread counts messages from other senders; with a nil receipt time
// every foreign message in the conversation is unread.
func (r *ConversationRepo) CountUnread(ctx context.Context, conversationID, employeeID uuid.UUID, after *time.Time) (int64, *app_error.AppError) {
	var count int64

	query := r.AppState.DB.WithContext(ctx).Model(&entity.ConversationMessage{}).
		Where("conversation_id = ? AND sender_employee_id <> ?", conversationID, employeeID)
	if after != nil {
		query = query.Where("sent_at > ?", *after)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, app_error.Internal("unexpected error occur when counting unread messages", "db-count")
	}
	return count, nil
}

func (r *ConversationRepo) UpsertReceipt(ctx context.Context, receipt entity.ChannelReadReceipt) *app_error.AppError {
	err := r.AppState.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "conversation_id"}, {Name: "employee_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"last_read_at": gorm.Expr("GREATEST(channel_read_receipts.last_read_at, EXCLUDED.last_read_at)"),
		}),
	}).Create(&receipt).Error
	if err != nil {
		return app_error.Internal("unexpected error occur when upserting read receipt", "db-upsert")
	}
	return nil
}

func (r *ConversationRepo) FindReceipts(ctx context.Context, employeeID uuid.UUID, conversationIDs []uuid.UUID) ([]entity.ChannelReadReceipt, *app_error.AppError) {
	if len(conversationIDs) == 0 {
		return nil, nil
	}

	var receipts []entity.ChannelReadReceipt
	err := r.AppState.DB.WithContext(ctx).
		Where("employee_id = ? AND conversation_id IN ?", employeeID, conversationIDs).
		Find(&receipts).Error
	if err != nil {
		return nil, app_error.Internal("unexpected error occur when fetching read receipts", "db-list")
	}
	return receipts, nil
}
