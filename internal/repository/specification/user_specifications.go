package specification

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByEmail matches the stored lower-cased email.
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", strings.ToLower(s.Email))
}

// ByEmailExcluding is the uniqueness re-check used on profile updates: does
// anyone other than this user hold the address?
type ByEmailExcluding struct {
	Email  string
	UserID uuid.UUID
}

func (s ByEmailExcluding) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ? AND id != ?", strings.ToLower(s.Email), s.UserID)
}
