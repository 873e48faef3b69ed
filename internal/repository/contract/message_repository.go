package contract

import (
	"context"

	"drama-llm-be/internal/entity"
	"drama-llm-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// CreateBatch inserts copies in one statement, keeping the provided
	// CreatedAt values so duplicated conversations preserve message order.
	CreateBatch(ctx context.Context, messages []*entity.Message) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpdateScoped and DeleteScoped match on both message and conversation id
	// so a message can never be touched through a foreign conversation. Both
	// report the matched row count; zero means not found (or already deleted).
	UpdateScoped(ctx context.Context, id, conversationId uuid.UUID, fields map[string]interface{}) (*entity.Message, error)
	DeleteScoped(ctx context.Context, id, conversationId uuid.UUID) (int64, error)
}
