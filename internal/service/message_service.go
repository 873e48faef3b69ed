package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"drama-llm-be/internal/dto"
	"drama-llm-be/internal/entity"
	"drama-llm-be/internal/pkg/apperror"
	"drama-llm-be/internal/repository/specification"
	"drama-llm-be/internal/repository/unitofwork"
)

const defaultMessagePageLimit = 50

type IMessageService interface {
	Add(ctx context.Context, conversationId uuid.UUID, req *dto.CreateMessageRequest) (*dto.MessageResponse, error)
	List(ctx context.Context, conversationId uuid.UUID, query *dto.ListMessagesQuery) ([]*dto.MessageResponse, *dto.Pagination, error)
	Update(ctx context.Context, conversationId, messageId uuid.UUID, req *dto.UpdateMessageRequest) (*dto.MessageResponse, error)
	Delete(ctx context.Context, conversationId, messageId uuid.UUID) error
}

type messageService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewMessageService(uowFactory unitofwork.RepositoryFactory) IMessageService {
	return &messageService{
		uowFactory: uowFactory,
	}
}

// Add inserts the message and bumps the conversation's updated_at in the same
// transaction, so listings sorted by recency move the conversation up.
func (s *messageService) Add(ctx context.Context, conversationId uuid.UUID, req *dto.CreateMessageRequest) (*dto.MessageResponse, error) {
	metadata := entity.MessageMetadata{}
	if req.Metadata != nil {
		metadata = *req.Metadata
	}

	message := &entity.Message{
		ConversationId: conversationId,
		Role:           entity.MessageRole(req.Role),
		Content:        req.Content,
		Metadata:       metadata,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().Create(ctx, message); err != nil {
		return nil, err
	}
	if err := uow.ConversationRepository().Touch(ctx, conversationId); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return dto.NewMessageResponse(message), nil
}

func (s *messageService) List(ctx context.Context, conversationId uuid.UUID, query *dto.ListMessagesQuery) ([]*dto.MessageResponse, *dto.Pagination, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultMessagePageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	specs := []specification.Specification{
		specification.ByConversationID{ConversationID: conversationId},
	}
	if query.Before != nil {
		specs = append(specs, specification.CreatedBefore{At: *query.Before})
	}
	if query.After != nil {
		specs = append(specs, specification.CreatedAfter{At: *query.After})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.MessageRepository().Count(ctx, specs...)
	if err != nil {
		return nil, nil, err
	}

	listSpecs := append(specs,
		specification.OrderBy{Field: "created_at"},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	messages, err := uow.MessageRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, nil, err
	}

	return dto.NewMessageResponses(messages), dto.NewPagination(page, limit, total), nil
}

func (s *messageService) Update(ctx context.Context, conversationId, messageId uuid.UUID, req *dto.UpdateMessageRequest) (*dto.MessageResponse, error) {
	if req.Content == nil && req.Metadata == nil {
		return nil, apperror.Validation("No fields to update")
	}

	fields := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Metadata != nil {
		raw, err := req.Metadata.MarshalJSON()
		if err != nil {
			return nil, err
		}
		fields["metadata"] = datatypes.JSON(raw)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.MessageRepository().UpdateScoped(ctx, messageId, conversationId, fields)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, apperror.NotFound("Message not found")
	}
	return dto.NewMessageResponse(message), nil
}

func (s *messageService) Delete(ctx context.Context, conversationId, messageId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	affected, err := uow.MessageRepository().DeleteScoped(ctx, messageId, conversationId)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NotFound("Message not found")
	}
	return nil
}
