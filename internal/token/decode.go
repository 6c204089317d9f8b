package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// DecodeUnverified decodes a token's payload without checking its
// signature. The client never holds the signing secret; it trusts the
// server-issued token optimistically and only judges expiry locally.
func DecodeUnverified(raw string) (*Claims, error) {
	tok, _, err := jwt.NewParser().ParseUnverified(raw, &Claims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

// UserFromToken derives the CurrentUser projection from a raw token.
// It fails on malformed tokens, missing expiry, and unrecognized roles;
// it does NOT fail on expiry — expiry is a session judgment, not a
// decode failure.
func UserFromToken(raw string) (*CurrentUser, error) {
	claims, err := DecodeUnverified(raw)
	if err != nil {
		return nil, err
	}

	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("token has no expiry")
	}

	role, err := ParseRole(claims.Role)
	if err != nil {
		return nil, err
	}

	return &CurrentUser{
		ID:        claims.UserID,
		Email:     claims.Email,
		Name:      claims.Name,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
