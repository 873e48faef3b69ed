package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"drama-llm-be/internal/pkg/apperror"
	"drama-llm-be/internal/pkg/authutil"
	"drama-llm-be/internal/repository/specification"
	"drama-llm-be/internal/repository/unitofwork"
)

// Locals keys set by the auth middleware.
const (
	LocalsUser   = "user"
	LocalsUserId = "user_id"
	LocalsToken  = "token"
)

// NewAuthMiddleware authenticates the request: a syntactically valid JWT is
// not enough, the token must also match a live session row. Deleting the row
// revokes access immediately, whatever the token's exp claim says.
func NewAuthMiddleware(uowFactory unitofwork.RepositoryFactory, tokens *authutil.TokenManager) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token, ok := authutil.ExtractTokenFromHeader(ctx.Get("Authorization"))
		if !ok {
			return apperror.Authentication("Authentication required")
		}

		payload, err := tokens.Verify(token)
		if err != nil {
			return err
		}

		uow := uowFactory.NewUnitOfWork(ctx.UserContext())

		user, err := uow.UserRepository().FindOne(ctx.UserContext(), specification.ByID{ID: payload.UserId})
		if err != nil {
			return err
		}
		if user == nil {
			return apperror.Authentication("User not found")
		}
		if !user.IsActive {
			return apperror.Authorization("Account is deactivated")
		}

		session, err := uow.SessionRepository().FindOne(ctx.UserContext(),
			specification.ByToken{Token: token},
		)
		if err != nil {
			return err
		}
		if session == nil || session.Expired(time.Now()) {
			return apperror.Authentication("Session expired or revoked")
		}

		// Best effort; a failed bump must not reject the request.
		_ = uow.SessionRepository().TouchLastActivity(ctx.UserContext(), token)

		ctx.Locals(LocalsUser, user)
		ctx.Locals(LocalsUserId, user.Id)
		ctx.Locals(LocalsToken, token)

		return ctx.Next()
	}
}

// NewOptionalAuthMiddleware attaches the user when valid credentials are
// presented and continues anonymously otherwise.
func NewOptionalAuthMiddleware(uowFactory unitofwork.RepositoryFactory, tokens *authutil.TokenManager) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token, ok := authutil.ExtractTokenFromHeader(ctx.Get("Authorization"))
		if !ok {
			return ctx.Next()
		}

		payload, err := tokens.Verify(token)
		if err != nil {
			return ctx.Next()
		}

		uow := uowFactory.NewUnitOfWork(ctx.UserContext())

		user, err := uow.UserRepository().FindOne(ctx.UserContext(), specification.ByID{ID: payload.UserId})
		if err != nil || user == nil || !user.IsActive {
			return ctx.Next()
		}

		session, err := uow.SessionRepository().FindOne(ctx.UserContext(),
			specification.ByToken{Token: token},
		)
		if err != nil || session == nil || session.Expired(time.Now()) {
			return ctx.Next()
		}

		ctx.Locals(LocalsUser, user)
		ctx.Locals(LocalsUserId, user.Id)
		ctx.Locals(LocalsToken, token)

		return ctx.Next()
	}
}
