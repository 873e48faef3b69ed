package dto

import (
	"time"

	"github.com/google/uuid"

	"drama-llm-be/internal/entity"
)

type CreateMessageRequest struct {
	Role     string                  `json:"role" validate:"required,oneof=user assistant system"`
	Content  string                  `json:"content" validate:"required"`
	Metadata *entity.MessageMetadata `json:"metadata"`
}

type UpdateMessageRequest struct {
	Content  *string                 `json:"content" validate:"omitempty,min=1"`
	Metadata *entity.MessageMetadata `json:"metadata"`
}

// ListMessagesQuery supports page/limit plus exclusive created_at cursors.
type ListMessagesQuery struct {
	Page   int        `query:"page"`
	Limit  int        `query:"limit"`
	Before *time.Time `query:"before"`
	After  *time.Time `query:"after"`
}

type MessageResponse struct {
	Id             uuid.UUID              `json:"id"`
	ConversationId uuid.UUID              `json:"conversation_id"`
	Role           entity.MessageRole     `json:"role"`
	Content        string                 `json:"content"`
	Metadata       entity.MessageMetadata `json:"metadata"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      *time.Time             `json:"updated_at"`
	IsDeleted      bool                   `json:"is_deleted"`
}

func NewMessageResponse(m *entity.Message) *MessageResponse {
	if m == nil {
		return nil
	}
	return &MessageResponse{
		Id:             m.Id,
		ConversationId: m.ConversationId,
		Role:           m.Role,
		Content:        m.Content,
		Metadata:       m.Metadata,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		IsDeleted:      m.IsDeleted,
	}
}

func NewMessageResponses(messages []*entity.Message) []*MessageResponse {
	out := make([]*MessageResponse, len(messages))
	for i, m := range messages {
		out[i] = NewMessageResponse(m)
	}
	return out
}
