package dto

import (
	"time"

	"github.com/google/uuid"

	"drama-llm-be/internal/entity"
)

type CreateConversationRequest struct {
	Title    string                       `json:"title" validate:"omitempty,max=255"`
	Model    string                       `json:"model" validate:"required,max=100"`
	Settings *entity.ConversationSettings `json:"settings"`
}

// UpdateConversationRequest is fully partial. At least one field must be
// present; the service rejects an empty update.
type UpdateConversationRequest struct {
	Title    *string                      `json:"title" validate:"omitempty,max=255"`
	Model    *string                      `json:"model" validate:"omitempty,max=100"`
	Settings *entity.ConversationSettings `json:"settings"`
}

type ListConversationsQuery struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	Search    string `query:"search"`
	Model     string `query:"model"`
	SortBy    string `query:"sort_by" validate:"omitempty,oneof=created_at updated_at title"`
	SortOrder string `query:"sort_order" validate:"omitempty,oneof=asc desc"`
}

type ConversationResponse struct {
	Id           uuid.UUID                   `json:"id"`
	UserId       uuid.UUID                   `json:"user_id"`
	Title        string                      `json:"title"`
	Model        string                      `json:"model"`
	Settings     entity.ConversationSettings `json:"settings"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    *time.Time                  `json:"updated_at"`
	IsDeleted    bool                        `json:"is_deleted"`
	MessageCount *int64                      `json:"message_count,omitempty"`
	LastMessage  *string                     `json:"last_message,omitempty"`
}

func NewConversationResponse(c *entity.Conversation) *ConversationResponse {
	if c == nil {
		return nil
	}
	return &ConversationResponse{
		Id:        c.Id,
		UserId:    c.UserId,
		Title:     c.Title,
		Model:     c.Model,
		Settings:  c.Settings,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		IsDeleted: c.IsDeleted,
	}
}

func NewConversationWithStatsResponse(c *entity.ConversationWithStats) *ConversationResponse {
	if c == nil {
		return nil
	}
	resp := NewConversationResponse(&c.Conversation)
	count := c.MessageCount
	resp.MessageCount = &count
	resp.LastMessage = c.LastMessage
	return resp
}

// ConversationDetailResponse is the GET /:id payload: the conversation plus
// its non-deleted messages in chronological order.
type ConversationDetailResponse struct {
	Conversation *ConversationResponse `json:"conversation"`
	Messages     []*MessageResponse    `json:"messages"`
}

type ExportConversationResponse struct {
	Conversation *ConversationResponse `json:"conversation"`
	Messages     []*MessageResponse    `json:"messages"`
	ExportedAt   time.Time             `json:"exported_at"`
}
