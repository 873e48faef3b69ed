package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"drama-llm-be/internal/dto"
	"drama-llm-be/internal/entity"
	"drama-llm-be/internal/pkg/apperror"
	"drama-llm-be/internal/pkg/logger"
	"drama-llm-be/internal/repository/contract"
	"drama-llm-be/internal/repository/specification"
	"drama-llm-be/internal/repository/unitofwork"
	"drama-llm-be/pkg/events"
)

const (
	defaultConversationTitle = "New Conversation"
	maxPageLimit             = 100
)

type IConversationService interface {
	List(ctx context.Context, userId uuid.UUID, query *dto.ListConversationsQuery) ([]*dto.ConversationResponse, *dto.Pagination, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error)
	Get(ctx context.Context, userId, conversationId uuid.UUID) (*dto.ConversationDetailResponse, error)
	Update(ctx context.Context, conversationId uuid.UUID, req *dto.UpdateConversationRequest) (*dto.ConversationResponse, error)
	Delete(ctx context.Context, conversationId uuid.UUID) error
	Export(ctx context.Context, conversationId uuid.UUID) (*dto.ExportConversationResponse, error)
	Duplicate(ctx context.Context, conversationId uuid.UUID) (*dto.ConversationResponse, error)
}

type conversationService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher IPublisherService
	log            logger.ILogger
}

func NewConversationService(uowFactory unitofwork.RepositoryFactory, eventPublisher IPublisherService, log logger.ILogger) IConversationService {
	return &conversationService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *conversationService) List(ctx context.Context, userId uuid.UUID, query *dto.ListConversationsQuery) ([]*dto.ConversationResponse, *dto.Pagination, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	rows, total, err := uow.ConversationRepository().FindAllWithStats(ctx, userId, contract.ConversationListQuery{
		Search:    query.Search,
		Model:     query.Model,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	})
	if err != nil {
		return nil, nil, err
	}

	out := make([]*dto.ConversationResponse, len(rows))
	for i, row := range rows {
		out[i] = dto.NewConversationWithStatsResponse(row)
	}
	return out, dto.NewPagination(page, limit, total), nil
}

func (s *conversationService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error) {
	title := req.Title
	if title == "" {
		title = defaultConversationTitle
	}
	settings := entity.ConversationSettings{}
	if req.Settings != nil {
		settings = *req.Settings
	}

	conversation := &entity.Conversation{
		UserId:   userId,
		Title:    title,
		Model:    req.Model,
		Settings: settings,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
		return nil, err
	}
	return dto.NewConversationResponse(conversation), nil
}

func (s *conversationService) Get(ctx context.Context, userId, conversationId uuid.UUID) (*dto.ConversationDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: conversationId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, apperror.NotFound("Conversation not found")
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	return &dto.ConversationDetailResponse{
		Conversation: dto.NewConversationResponse(conversation),
		Messages:     dto.NewMessageResponses(messages),
	}, nil
}

func (s *conversationService) Update(ctx context.Context, conversationId uuid.UUID, req *dto.UpdateConversationRequest) (*dto.ConversationResponse, error) {
	if req.Title == nil && req.Model == nil && req.Settings == nil {
		return nil, apperror.Validation("No fields to update")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, apperror.NotFound("Conversation not found")
	}

	if req.Title != nil {
		conversation.Title = *req.Title
	}
	if req.Model != nil {
		conversation.Model = *req.Model
	}
	if req.Settings != nil {
		conversation.Settings = *req.Settings
	}
	now := time.Now()
	conversation.UpdatedAt = &now

	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return nil, err
	}
	return dto.NewConversationResponse(conversation), nil
}

func (s *conversationService) Delete(ctx context.Context, conversationId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ConversationRepository().Delete(ctx, conversationId)
}

func (s *conversationService) Export(ctx context.Context, conversationId uuid.UUID) (*dto.ExportConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, apperror.NotFound("Conversation not found")
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	return &dto.ExportConversationResponse{
		Conversation: dto.NewConversationResponse(conversation),
		Messages:     dto.NewMessageResponses(messages),
		ExportedAt:   time.Now(),
	}, nil
}

// Duplicate copies the conversation and its live messages in one transaction.
// The copies keep the source messages' created_at values so the duplicate
// reads back in the same order as the original.
func (s *conversationService) Duplicate(ctx context.Context, conversationId uuid.UUID) (*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	source, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, apperror.NotFound("Conversation not found")
	}

	copyConv := &entity.Conversation{
		UserId:   source.UserId,
		Title:    source.Title + " (Copy)",
		Model:    source.Model,
		Settings: source.Settings,
	}
	if err := uow.ConversationRepository().Create(ctx, copyConv); err != nil {
		return nil, err
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	if len(messages) > 0 {
		copies := make([]*entity.Message, len(messages))
		for i, msg := range messages {
			copies[i] = &entity.Message{
				ConversationId: copyConv.Id,
				Role:           msg.Role,
				Content:        msg.Content,
				Metadata:       msg.Metadata,
				CreatedAt:      msg.CreatedAt,
			}
		}
		if err := uow.MessageRepository().CreateBatch(ctx, copies); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.log.Info("conversation", "conversation duplicated", map[string]interface{}{
		"source_id": conversationId.String(),
		"copy_id":   copyConv.Id.String(),
	})
	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: "CONVERSATION_DUPLICATED",
			Data: map[string]interface{}{
				"source_id": conversationId.String(),
				"copy_id":   copyConv.Id.String(),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.log.Warn("conversation", "failed to publish audit event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return dto.NewConversationResponse(copyConv), nil
}
