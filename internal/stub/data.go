package stub

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusrate/campusrate-go/internal/api"
	"github.com/campusrate/campusrate-go/internal/token"
)

// userRecord is an in-memory account. A non-empty TOTP secret means the
// account has two-factor enabled and sign-in must go through the
// one-time-code exchange.
type userRecord struct {
	ID           string
	Email        string
	Name         string
	Role         token.Role
	PasswordHash []byte
	TOTPSecret   string
	TOTPURL      string
	CreatedAt    time.Time
}

// SeedUser registers an account directly, bypassing the signup
// endpoint. With twoFactor set it returns the enrollment key so tests
// can mint valid codes.
func (s *Server) SeedUser(email, password, name string, role token.Role, twoFactor bool) (*otp.Key, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	rec := &userRecord{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	var key *otp.Key
	if twoFactor {
		key, err = totp.Generate(totp.GenerateOpts{Issuer: "CampusRate", AccountName: email})
		if err != nil {
			return nil, fmt.Errorf("failed to generate enrollment key: %w", err)
		}
		rec.TOTPSecret = key.Secret()
		rec.TOTPURL = key.URL()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[email]; exists {
		return nil, fmt.Errorf("email already registered: %s", email)
	}
	s.users[email] = rec

	return key, nil
}

// SeedCatalog installs institutes and professors for listing tests and
// local development.
func (s *Server) SeedCatalog(institutes []api.Institute, professors []api.Professor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.institutes = append(s.institutes, institutes...)
	s.professors = append(s.professors, professors...)
}

// SeedNotification queues a notification for the given user.
func (s *Server) SeedNotification(userID, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[userID] = append(s.notifications[userID], api.Notification{
		ID:        uuid.New().String(),
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// SeedReport files a moderation report for admin listing.
func (s *Server) SeedReport(reviewID, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, api.Report{
		ID:       uuid.New().String(),
		ReviewID: reviewID,
		Reason:   reason,
		Status:   "open",
	})
}

// UserID returns the seeded or registered account ID for an email, or "".
func (s *Server) UserID(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.users[email]; ok {
		return rec.ID
	}
	return ""
}

func (s *Server) recordAudit(actor, action string) {
	s.audit = append(s.audit, api.AuditEvent{
		ID:     uuid.New().String(),
		Actor:  actor,
		Action: action,
		At:     time.Now(),
	})
}
