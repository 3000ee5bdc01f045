package models

import "time"

// Session is an opaque bearer token record. The token itself is the
// credential; it is never embedded in a claims payload.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its lifetime. Expired
// sessions are treated as absent at resolution time, not purged.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
