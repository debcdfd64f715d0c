package auth

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side login record. The JWT handed to the client only
// names a session id; deleting the row ends the login no matter how long the
// token itself remains valid.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
