package auth

import "time"

// SessionClaims are the claims carried by an admin session token.
type SessionClaims struct {
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Jti        string    `json:"jti"`
	IssuedAt   time.Time `json:"iat"`
	NotBefore  time.Time `json:"nbf"`
	Expiration time.Time `json:"exp"`
	Admin      bool      `json:"admin"`
}

// SessionID returns the persisted session document ID bound to this token.
func (c *SessionClaims) SessionID() string {
	return c.Jti
}
