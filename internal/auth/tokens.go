package auth

import (
	"encoding/json/v2"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

const (
	tokenIssuer   = "pagekeep-server"
	tokenAudience = "pagekeep-admin"

	// PASETO v4 symmetric key requirements.
	keyBytesSize = 32 // 256 bits
)

// TokenService handles PASETO token generation and verification.
// Tokens are v4.local (encrypted, symmetric) and carry the persisted
// session ID as their jti claim.
type TokenService struct {
	symmetricKey  paseto.V4SymmetricKey
	tokenDuration time.Duration
}

// NewTokenService creates a new token service with the given key and lifetime.
func NewTokenService(key []byte, tokenDuration time.Duration) (*TokenService, error) {
	if len(key) != keyBytesSize {
		return nil, fmt.Errorf("PASETO v4 key must be exactly %d bytes, got %d", keyBytesSize, len(key))
	}

	symmetricKey, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	return &TokenService{
		symmetricKey:  symmetricKey,
		tokenDuration: tokenDuration,
	}, nil
}

// GenerateSessionToken creates a new PASETO v4.local token bound to the
// given session ID. The subject is the admin username.
func (s *TokenService) GenerateSessionToken(sessionID, username string) (string, error) {
	now := time.Now()

	token := paseto.NewToken()

	// Add the standard claims
	token.SetIssuer(tokenIssuer)
	token.SetSubject(username)
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.tokenDuration))
	token.SetJti(sessionID)

	// Our custom claims
	//nolint:errcheck // Token.Set only errors on invalid types, which we control
	_ = token.Set("admin", true)

	encrypted := token.V4Encrypt(s.symmetricKey, nil)
	return encrypted, nil
}

// VerifySessionToken verifies and parses a PASETO session token.
// Returns the claims if valid, or an error if the token is invalid or expired.
// Callers must additionally check that the session document still exists;
// a cryptographically valid token for a deleted session is not a live session.
func (s *TokenService) VerifySessionToken(tokenString string) (*SessionClaims, error) {
	parser := paseto.NewParser()

	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(time.Now()))

	// Parse and decrypt v4.local token
	token, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	var claims SessionClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}

	return &claims, nil
}

// TokenDuration returns the configured session token lifetime.
func (s *TokenService) TokenDuration() time.Duration {
	return s.tokenDuration
}
