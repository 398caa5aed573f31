package chat_dto

import "github.com/google/uuid"

type CreateConversationRequest struct {
	Subject        string      `json:"subject" validate:"required,max=200"`
	CreatorID      uuid.UUID   `json:"creator_id" validate:"required"`
	ParticipantIDs []uuid.UUID `json:"participant_ids"`
	InitialMessage *string     `json:"initial_message,omitempty" validate:"omitempty,max=4000"`
}

type CreateChannelRequest struct {
	Name           string      `json:"name" validate:"required,max=200"`
	Icon           *string     `json:"icon,omitempty" validate:"omitempty,max=100"`
	ChannelType    string      `json:"channel_type" validate:"required"`
	CreatorID      uuid.UUID   `json:"creator_id" validate:"required"`
	ParticipantIDs []uuid.UUID `json:"participant_ids"`
}

type SendMessageRequest struct {
	SenderID uuid.UUID `json:"sender_id" validate:"required"`
	Content  string    `json:"content" validate:"required,max=4000"`
}

type MarkAsReadRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" validate:"required"`
}
