package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"drama-llm-be/internal/dto"
	"drama-llm-be/internal/pkg/apperror"
	"drama-llm-be/internal/pkg/serverutils"
	"drama-llm-be/internal/service"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
	UpdateMe(ctx *fiber.Ctx) error
	ChangePassword(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	RevokeSession(ctx *fiber.Ctx) error
}

type authController struct {
	authService         service.IAuthService
	userService         service.IUserService
	registrationEnabled bool
}

func NewAuthController(authService service.IAuthService, userService service.IUserService, registrationEnabled bool) IAuthController {
	return &authController{
		authService:         authService,
		userService:         userService,
		registrationEnabled: registrationEnabled,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
	h.Post("/logout", auth, c.Logout)
	h.Get("/me", auth, c.Me)
	h.Put("/me", auth, c.UpdateMe)
	h.Put("/password", auth, c.ChangePassword)
	h.Get("/sessions", auth, c.ListSessions)
	h.Delete("/sessions/:sessionId", auth, c.RevokeSession)
}

// Register answers the gate first: a disabled registry rejects every request
// the same way, well-formed or not.
func (c *authController) Register(ctx *fiber.Ctx) error {
	if !c.registrationEnabled {
		return apperror.Validation("Registration is currently disabled")
	}

	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Register(ctx.UserContext(), &req, ctx.IP(), ctx.Get("User-Agent"))
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("User registered successfully", res))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.UserContext(), &req, ctx.IP(), ctx.Get("User-Agent"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	token := ctx.Locals(serverutils.LocalsToken).(string)
	if err := c.authService.Logout(ctx.UserContext(), token); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Logout successful", nil))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	userId := ctx.Locals(serverutils.LocalsUserId).(uuid.UUID)

	res, err := c.userService.GetProfile(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Current user", res))
}

func (c *authController) UpdateMe(ctx *fiber.Ctx) error {
	userId := ctx.Locals(serverutils.LocalsUserId).(uuid.UUID)

	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.userService.UpdateProfile(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile updated", res))
}

func (c *authController) ChangePassword(ctx *fiber.Ctx) error {
	userId := ctx.Locals(serverutils.LocalsUserId).(uuid.UUID)
	token := ctx.Locals(serverutils.LocalsToken).(string)

	var req dto.ChangePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.authService.ChangePassword(ctx.UserContext(), userId, token, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Password changed successfully", nil))
}

func (c *authController) ListSessions(ctx *fiber.Ctx) error {
	userId := ctx.Locals(serverutils.LocalsUserId).(uuid.UUID)

	res, err := c.authService.ListSessions(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Active sessions", res))
}

func (c *authController) RevokeSession(ctx *fiber.Ctx) error {
	userId := ctx.Locals(serverutils.LocalsUserId).(uuid.UUID)

	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return apperror.Validation("Invalid session id")
	}

	if err := c.authService.RevokeSession(ctx.UserContext(), userId, sessionId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Session revoked", nil))
}
