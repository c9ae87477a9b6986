package domain

import "time"

// Session is a persisted admin session. Tokens carry their session ID
// as the jti claim; a token is only accepted while its session document
// exists, so logout (or manual deletion) revokes it immediately.
type Session struct {
	Record
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
