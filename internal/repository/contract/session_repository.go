package contract

import (
	"context"

	"drama-llm-be/internal/entity"
	"drama-llm-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error)

	TouchLastActivity(ctx context.Context, token string) error
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpiredByUser(ctx context.Context, userId uuid.UUID) error
	// DeleteByIDAndUser reports how many rows matched so callers can 404 on
	// sessions that do not exist or belong to someone else.
	DeleteByIDAndUser(ctx context.Context, id, userId uuid.UUID) (int64, error)
	// DeleteOthers revokes every session of the user except the presented
	// token (the password-change semantics).
	DeleteOthers(ctx context.Context, userId uuid.UUID, keepToken string) error
}
