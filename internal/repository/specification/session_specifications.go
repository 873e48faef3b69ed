package specification

import (
	"time"

	"gorm.io/gorm"
)

// ByToken matches a session row by the exact bearer token.
type ByToken struct {
	Token string
}

func (s ByToken) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("token = ?", s.Token)
}

// ActiveAt keeps sessions whose expiry is still in the future.
type ActiveAt struct {
	Now time.Time
}

func (s ActiveAt) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at > ?", s.Now)
}
