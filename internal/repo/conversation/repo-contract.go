package conversation_repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamgrid/teamgrid/internal/entity"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
)

type ConversationRepoContract interface {
	// CreateConversation writes the conversation, its participant rows and
	// the optional seed message in one transaction.
	CreateConversation(ctx context.Context, conversation entity.Conversation, participants []entity.ConversationParticipant, seed *entity.ConversationMessage) *app_error.AppError
	FindConversationByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, *app_error.AppError)
	FindConversationsForEmployee(ctx context.Context, employeeID uuid.UUID) ([]entity.Conversation, *app_error.AppError)

	FindParticipant(ctx context.Context, conversationID, employeeID uuid.UUID) (*entity.ConversationParticipant, *app_error.AppError)

	FindMessages(ctx context.Context, conversationID uuid.UUID) ([]entity.ConversationMessage, *app_error.AppError)
	FindRecentMessagesForEmployee(ctx context.Context, employeeID uuid.UUID, limit int) ([]entity.ConversationMessage, *app_error.AppError)
	// AppendMessage inserts the message and bumps the parent conversation's
	// last_message_at in one transaction.
	AppendMessage(ctx context.Context, message entity.ConversationMessage) *app_error.AppError
	CountUnread(ctx context.Context, conversationID, employeeID uuid.UUID, after *time.Time) (int64, *app_error.AppError)

	// UpsertReceipt is last-write-wins on the max of last_read_at; the
	// bookmark never regresses under out-of-order writes.
	UpsertReceipt(ctx context.Context, receipt entity.ChannelReadReceipt) *app_error.AppError
	FindReceipts(ctx context.Context, employeeID uuid.UUID, conversationIDs []uuid.UUID) ([]entity.ChannelReadReceipt, *app_error.AppError)
}
