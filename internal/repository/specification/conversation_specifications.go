package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByConversationID scopes messages to their parent conversation.
type ByConversationID struct {
	ConversationID uuid.UUID
}

func (s ByConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationID)
}

// CreatedBefore / CreatedAfter are the exclusive timestamp cursors of the
// message listing endpoint.
type CreatedBefore struct {
	At time.Time
}

func (s CreatedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at < ?", s.At)
}

type CreatedAfter struct {
	At time.Time
}

func (s CreatedAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at > ?", s.At)
}
