package contract

import (
	"context"

	"drama-llm-be/internal/entity"
	"drama-llm-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ConversationListQuery carries the listing filters. SortBy/SortOrder are
// validated against a whitelist before they reach the repository.
type ConversationListQuery struct {
	Search    string
	Model     string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	Update(ctx context.Context, conversation *entity.Conversation) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindAllWithStats is the aggregate listing: each row carries its
	// non-deleted message count and latest message content, and the total
	// matches the same filters for pagination.
	FindAllWithStats(ctx context.Context, userId uuid.UUID, q ConversationListQuery) ([]*entity.ConversationWithStats, int64, error)

	// Touch bumps updated_at; called in the same transaction as a message
	// insert so the conversation's timestamp tracks its newest message.
	Touch(ctx context.Context, id uuid.UUID) error
}
