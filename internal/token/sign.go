package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Signer issues and validates HS256 session tokens. Only the stub
// server uses it; the client side stays on DecodeUnverified.
type Signer struct {
	secretKey []byte
	ttl       time.Duration
}

// NewSigner creates a token signer.
func NewSigner(secretKey string, ttl time.Duration) *Signer {
	return &Signer{secretKey: []byte(secretKey), ttl: ttl}
}

// Sign issues a session token for the given user.
func (s *Signer) Sign(userID, email, name string, role Role) (string, time.Time, error) {
	now := time.Now()
	expiry := now.Add(s.ttl)

	claims := Claims{
		UserID: userID,
		Email:  email,
		Name:   name,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "campusrate",
			Subject:   userID,
			ID:        uuid.New().String(),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiry, nil
}

// Validate validates a token's signature and expiry and returns its claims.
func (s *Signer) Validate(raw string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
