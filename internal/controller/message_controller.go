package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"drama-llm-be/internal/dto"
	"drama-llm-be/internal/pkg/apperror"
	"drama-llm-be/internal/pkg/serverutils"
	"drama-llm-be/internal/service"
)

type IMessageController interface {
	RegisterRoutes(r fiber.Router, auth, ownership fiber.Handler)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type messageController struct {
	messageService service.IMessageService
}

func NewMessageController(messageService service.IMessageService) IMessageController {
	return &messageController{
		messageService: messageService,
	}
}

func (c *messageController) RegisterRoutes(r fiber.Router, auth, ownership fiber.Handler) {
	h := r.Group("/conversations/:conversationId/messages")
	h.Use(auth, ownership)
	h.Post("/", c.Create)
	h.Get("/", c.List)
	h.Put("/:messageId", c.Update)
	h.Delete("/:messageId", c.Delete)
}

func (c *messageController) Create(ctx *fiber.Ctx) error {
	conversationId := ctx.Locals(serverutils.LocalsConversationId).(uuid.UUID)

	var req dto.CreateMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.messageService.Add(ctx.UserContext(), conversationId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Message added", res))
}

func (c *messageController) List(ctx *fiber.Ctx) error {
	conversationId := ctx.Locals(serverutils.LocalsConversationId).(uuid.UUID)

	var query dto.ListMessagesQuery
	if err := ctx.QueryParser(&query); err != nil {
		return apperror.Validation("Invalid query parameters")
	}

	res, pagination, err := c.messageService.List(ctx.UserContext(), conversationId, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.PaginatedResponse("Messages", res, pagination))
}

func (c *messageController) Update(ctx *fiber.Ctx) error {
	conversationId := ctx.Locals(serverutils.LocalsConversationId).(uuid.UUID)

	messageId, err := uuid.Parse(ctx.Params("messageId"))
	if err != nil {
		return apperror.Validation("Invalid message id")
	}

	var req dto.UpdateMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.messageService.Update(ctx.UserContext(), conversationId, messageId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Message updated", res))
}

func (c *messageController) Delete(ctx *fiber.Ctx) error {
	conversationId := ctx.Locals(serverutils.LocalsConversationId).(uuid.UUID)

	messageId, err := uuid.Parse(ctx.Params("messageId"))
	if err != nil {
		return apperror.Validation("Invalid message id")
	}

	if err := c.messageService.Delete(ctx.UserContext(), conversationId, messageId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Message deleted", nil))
}
