package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session binds a bearer token to a user server-side. The token column holds
// the JWT verbatim: authentication does an exact-match lookup, so revoking a
// session (logout, password change) invalidates the token before its own
// expiry claim runs out.
type Session struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Token        string
	ExpiresAt    time.Time
	LastActivity time.Time
	IpAddress    string
	UserAgent    string
	CreatedAt    time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
