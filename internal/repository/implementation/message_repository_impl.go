package implementation

import (
	"context"

	"drama-llm-be/internal/entity"
	"drama-llm-be/internal/mapper"
	"drama-llm-be/internal/model"
	"drama-llm-be/internal/repository/contract"
	"drama-llm-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *MessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *entity.Message) error {
	m, err := r.mapper.MessageToModel(message)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	mapped, err := r.mapper.MessageToEntity(m)
	if err != nil {
		return err
	}
	*message = *mapped
	return nil
}

func (r *MessageRepositoryImpl) CreateBatch(ctx context.Context, messages []*entity.Message) error {
	if len(messages) == 0 {
		return nil
	}
	models := make([]*model.Message, len(messages))
	for i, msg := range messages {
		m, err := r.mapper.MessageToModel(msg)
		if err != nil {
			return err
		}
		models[i] = m
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *MessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	var models []*model.Message
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Message, len(models))
	for i, m := range models {
		e, err := r.mapper.MessageToEntity(m)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}

func (r *MessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Message{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MessageRepositoryImpl) UpdateScoped(ctx context.Context, id, conversationId uuid.UUID, fields map[string]interface{}) (*entity.Message, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("id = ? AND conversation_id = ?", id, conversationId).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var m model.Message
	if err := r.db.WithContext(ctx).
		Where("id = ? AND conversation_id = ?", id, conversationId).
		First(&m).Error; err != nil {
		return nil, err
	}
	return r.mapper.MessageToEntity(&m)
}

func (r *MessageRepositoryImpl) DeleteScoped(ctx context.Context, id, conversationId uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND conversation_id = ?", id, conversationId).
		Delete(&model.Message{})
	return result.RowsAffected, result.Error
}
