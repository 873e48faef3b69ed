package implementation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"drama-llm-be/internal/entity"
	"drama-llm-be/internal/mapper"
	"drama-llm-be/internal/model"
	"drama-llm-be/internal/repository/contract"
	"drama-llm-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ConversationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConversationRepositoryImpl) Create(ctx context.Context, conversation *entity.Conversation) error {
	m, err := r.mapper.ConversationToModel(conversation)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	mapped, err := r.mapper.ConversationToEntity(m)
	if err != nil {
		return err
	}
	*conversation = *mapped
	return nil
}

func (r *ConversationRepositoryImpl) Update(ctx context.Context, conversation *entity.Conversation) error {
	m, err := r.mapper.ConversationToModel(conversation)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	mapped, err := r.mapper.ConversationToEntity(m)
	if err != nil {
		return err
	}
	*conversation = *mapped
	return nil
}

func (r *ConversationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Conversation{}, id).Error
}

func (r *ConversationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	var m model.Conversation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ConversationToEntity(&m)
}

func (r *ConversationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Conversation{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ConversationRepositoryImpl) Touch(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", gorm.Expr("NOW()")).Error
}

// conversationListRow is the scan target of the aggregate listing query.
type conversationListRow struct {
	Id           uuid.UUID      `gorm:"column:id"`
	UserId       uuid.UUID      `gorm:"column:user_id"`
	Title        string         `gorm:"column:title"`
	Model        string         `gorm:"column:model"`
	Settings     datatypes.JSON `gorm:"column:settings"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	MessageCount int64          `gorm:"column:message_count"`
	LastMessage  *string        `gorm:"column:last_message"`
}

var conversationSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"title":      "title",
}

func (r *ConversationRepositoryImpl) FindAllWithStats(ctx context.Context, userId uuid.UUID, q contract.ConversationListQuery) ([]*entity.ConversationWithStats, int64, error) {
	// The message aggregates live in an inner select so the search filter can
	// match against last_message as well as the title.
	base := `
		SELECT c.id, c.user_id, c.title, c.model, c.settings, c.created_at, c.updated_at,
			(SELECT COUNT(*) FROM messages m
				WHERE m.conversation_id = c.id AND m.deleted_at IS NULL) AS message_count,
			(SELECT m.content FROM messages m
				WHERE m.conversation_id = c.id AND m.deleted_at IS NULL
				ORDER BY m.created_at DESC LIMIT 1) AS last_message
		FROM conversations c
		WHERE c.user_id = ? AND c.deleted_at IS NULL`

	args := []interface{}{userId}
	if q.Model != "" {
		base += " AND c.model = ?"
		args = append(args, q.Model)
	}

	filtered := "SELECT * FROM (" + base + ") sub"
	if q.Search != "" {
		filtered += " WHERE (sub.title ILIKE ? OR sub.last_message ILIKE ?)"
		pattern := "%" + q.Search + "%"
		args = append(args, pattern, pattern)
	}

	var total int64
	countSQL := "SELECT COUNT(*) FROM (" + filtered + ") counted"
	if err := r.db.WithContext(ctx).Raw(countSQL, args...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	sortColumn, ok := conversationSortColumns[q.SortBy]
	if !ok {
		sortColumn = "updated_at"
	}
	direction := "DESC"
	if strings.EqualFold(q.SortOrder, "asc") {
		direction = "ASC"
	}

	listSQL := fmt.Sprintf("%s ORDER BY sub.%s %s LIMIT ? OFFSET ?", filtered, sortColumn, direction)
	listArgs := append(args, q.Limit, q.Offset)

	var rows []conversationListRow
	if err := r.db.WithContext(ctx).Raw(listSQL, listArgs...).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	results := make([]*entity.ConversationWithStats, len(rows))
	for i, row := range rows {
		conv, err := r.mapper.ConversationToEntity(&model.Conversation{
			Id:        row.Id,
			UserId:    row.UserId,
			Title:     row.Title,
			Model:     row.Model,
			Settings:  row.Settings,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
		if err != nil {
			return nil, 0, err
		}
		results[i] = &entity.ConversationWithStats{
			Conversation: *conv,
			MessageCount: row.MessageCount,
			LastMessage:  row.LastMessage,
		}
	}
	return results, total, nil
}
