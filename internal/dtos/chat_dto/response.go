package chat_dto

import "time"

type ChannelResponse struct {
	ID            string     `json:"id"`
	Subject       string     `json:"subject"`
	Icon          *string    `json:"icon,omitempty"`
	ChannelType   string     `json:"channel_type"`
	Status        string     `json:"status"`
	CreatedBy     string     `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	UnreadCount   int64      `json:"unread_count"`
}

type MessageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	SenderName     string    `json:"sender_name"`
	Content        string    `json:"content"`
	SentAt         time.Time `json:"sent_at"`
}
