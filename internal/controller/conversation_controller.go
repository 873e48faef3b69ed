package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"drama-llm-be/internal/dto"
	"drama-llm-be/internal/pkg/apperror"
	"drama-llm-be/internal/pkg/serverutils"
	"drama-llm-be/internal/service"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router, auth, ownership fiber.Handler)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
	Duplicate(ctx *fiber.Ctx) error
}

type conversationController struct {
	conversationService service.IConversationService
}

func NewConversationController(conversationService service.IConversationService) IConversationController {
	return &conversationController{
		conversationService: conversationService,
	}
}

func (c *conversationController) RegisterRoutes(r fiber.Router, auth, ownership fiber.Handler) {
	h := r.Group("/conversations")
	h.Use(auth)
	h.Get("/", c.List)
	h.Post("/", c.Create)
	h.Get("/:id", ownership, c.Show)
	h.Put("/:id", ownership, c.Update)
	h.Delete("/:id", ownership, c.Delete)
	h.Get("/:id/export", ownership, c.Export)
	h.Post("/:id/duplicate", ownership, c.Duplicate)
}

func (c *conversationController) List(ctx *fiber.Ctx) error {
	userId := ctx.Locals(serverutils.LocalsUserId).(uuid.UUID)

	var query dto.ListConversationsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return apperror.Validation("Invalid query parameters")
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, pagination, err := c.conversationService.List(ctx.UserContext(), userId, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.PaginatedResponse("Conversations", res, pagination))
}

func (c *conversationController) Create(ctx *fiber.Ctx) error {
	userId := ctx.Locals(serverutils.LocalsUserId).(uuid.UUID)

	var req dto.CreateConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.conversationService.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Conversation created", res))
}

func (c *conversationController) Show(ctx *fiber.Ctx) error {
	userId := ctx.Locals(serverutils.LocalsUserId).(uuid.UUID)
	conversationId := ctx.Locals(serverutils.LocalsConversationId).(uuid.UUID)

	res, err := c.conversationService.Get(ctx.UserContext(), userId, conversationId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversation", res))
}

func (c *conversationController) Update(ctx *fiber.Ctx) error {
	conversationId := ctx.Locals(serverutils.LocalsConversationId).(uuid.UUID)

	var req dto.UpdateConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.conversationService.Update(ctx.UserContext(), conversationId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversation updated", res))
}

func (c *conversationController) Delete(ctx *fiber.Ctx) error {
	conversationId := ctx.Locals(serverutils.LocalsConversationId).(uuid.UUID)

	if err := c.conversationService.Delete(ctx.UserContext(), conversationId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Conversation deleted", nil))
}

func (c *conversationController) Export(ctx *fiber.Ctx) error {
	conversationId := ctx.Locals(serverutils.LocalsConversationId).(uuid.UUID)

	res, err := c.conversationService.Export(ctx.UserContext(), conversationId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversation export", res))
}

func (c *conversationController) Duplicate(ctx *fiber.Ctx) error {
	conversationId := ctx.Locals(serverutils.LocalsConversationId).(uuid.UUID)

	res, err := c.conversationService.Duplicate(ctx.UserContext(), conversationId)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Conversation duplicated", res))
}
