package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"drama-llm-be/internal/pkg/apperror"
	"drama-llm-be/internal/repository/specification"
	"drama-llm-be/internal/repository/unitofwork"
)

const LocalsConversationId = "conversation_id"

// RequireOwnership guards routes whose path carries the owning user's id:
// the param must match the authenticated user.
func RequireOwnership(param string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ownerId, err := uuid.Parse(ctx.Params(param))
		if err != nil {
			return apperror.Validation("Invalid id")
		}
		userId, ok := ctx.Locals(LocalsUserId).(uuid.UUID)
		if !ok || ownerId != userId {
			return apperror.Authorization("Access denied")
		}
		return ctx.Next()
	}
}

// NewConversationOwnershipMiddleware resolves the conversation named in the
// path. Missing or soft-deleted rows are a 404, someone else's conversation
// a 403. Soft-deleted rows fall out of FindOne through the gorm soft-delete
// scope, so they land on the 404 path.
func NewConversationOwnershipMiddleware(uowFactory unitofwork.RepositoryFactory) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		raw := ctx.Params("conversationId")
		if raw == "" {
			raw = ctx.Params("id")
		}
		conversationId, err := uuid.Parse(raw)
		if err != nil {
			return apperror.Validation("Invalid conversation id")
		}

		userId, ok := ctx.Locals(LocalsUserId).(uuid.UUID)
		if !ok {
			return apperror.Authentication("Authentication required")
		}

		uow := uowFactory.NewUnitOfWork(ctx.UserContext())
		conversation, err := uow.ConversationRepository().FindOne(ctx.UserContext(), specification.ByID{ID: conversationId})
		if err != nil {
			return err
		}
		if conversation == nil {
			return apperror.NotFound("Conversation not found")
		}
		if conversation.UserId != userId {
			return apperror.Authorization("Access denied")
		}

		ctx.Locals(LocalsConversationId, conversationId)
		return ctx.Next()
	}
}
