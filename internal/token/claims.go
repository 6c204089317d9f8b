package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the closed set of roles the server issues. Anything else is a
// parse error, never a silent default.
type Role string

const (
	RoleStudent   Role = "student"
	RoleProfessor Role = "professor"
	RoleAdmin     Role = "admin"
)

// ParseRole maps a payload role tag onto the closed role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleProfessor, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unrecognized role %q", s)
}

// Claims is the token payload the client cares about.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// CurrentUser is the read-only projection decoded from a session token.
// It is recomputed from the persisted token on demand, never stored.
type CurrentUser struct {
	ID        string
	Email     string
	Name      string
	Role      Role
	ExpiresAt time.Time
}

// Expired reports whether the session behind this projection has lapsed.
func (u *CurrentUser) Expired() bool {
	return !time.Now().Before(u.ExpiresAt)
}
