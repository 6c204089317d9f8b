package stub

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusrate/campusrate-go/internal/api"
	"github.com/campusrate/campusrate-go/internal/token"
)

// handleSignUp registers an account. Professor registrations get a
// two-factor enrollment: the response carries the provisioning URL and
// never a session token — the new account signs in separately.
func (s *Server) handleSignUp(c *gin.Context) {
	var req api.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	role, err := token.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}
	if role == token.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin accounts cannot self-register"})
		return
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}
	if role == token.RoleProfessor && req.InstituteID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "institution is required for professor accounts"})
		return
	}

	twoFactor := role == token.RoleProfessor
	key, err := s.SeedUser(req.Email, req.Password, req.FirstName+" "+req.LastName, role, twoFactor)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	resp := api.SignUpResponse{UserID: s.UserID(req.Email)}
	if key != nil {
		resp.TwoFARequired = true
		resp.QRCodeURL = key.URL()
	}

	s.logger.Info("account registered", zap.String("email", req.Email), zap.String("role", req.Role))
	c.JSON(http.StatusCreated, resp)
}

// handleSignIn exchanges credentials for a token, or for a two-factor
// challenge when the account has one enrolled.
func (s *Server) handleSignIn(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	rec, ok := s.users[req.Email]
	s.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	if rec.TOTPSecret != "" {
		c.JSON(http.StatusOK, api.SignInResponse{TwoFARequired: true, QRCodeURL: rec.TOTPURL})
		return
	}

	raw, _, err := s.signer.Sign(rec.ID, rec.Email, rec.Name, rec.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, api.SignInResponse{Token: raw})
}

// handleVerifyOTP completes a pending two-factor challenge.
func (s *Server) handleVerifyOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	rec, ok := s.users[req.Email]
	s.mu.Unlock()

	if !ok || rec.TOTPSecret == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no challenge pending"})
		return
	}

	if !totp.Validate(req.Code, rec.TOTPSecret) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid one-time code"})
		return
	}

	raw, _, err := s.signer.Sign(rec.ID, rec.Email, rec.Name, rec.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, api.VerifyOTPResponse{Token: raw})
}

func (s *Server) handleListInstitutes(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, append([]api.Institute{}, s.institutes...))
}

func (s *Server) handleGetInstitute(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inst := range s.institutes {
		if inst.ID == id {
			c.JSON(http.StatusOK, inst)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "institute not found"})
}

func (s *Server) handleSearchProfessors(c *gin.Context) {
	query := strings.ToLower(c.Query("q"))
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := make([]api.Professor, 0, len(s.professors))
	for _, prof := range s.professors {
		if query == "" ||
			strings.Contains(strings.ToLower(prof.Name), query) ||
			strings.Contains(strings.ToLower(prof.Department), query) {
			matches = append(matches, prof)
		}
	}
	c.JSON(http.StatusOK, matches)
}

func (s *Server) handleGetProfessor(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, prof := range s.professors {
		if prof.ID == id {
			c.JSON(http.StatusOK, prof)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "professor not found"})
}

func (s *Server) handleListReviews(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, append([]api.Review{}, s.reviews[id]...))
}

// handleSubmitReview files a review. Students only: any other role gets
// a 403 the client surfaces as a resource fault.
func (s *Server) handleSubmitReview(c *gin.Context) {
	if c.MustGet("user_role").(token.Role) != token.RoleStudent {
		c.JSON(http.StatusForbidden, gin.H{"error": "students only"})
		return
	}

	var input api.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if input.Rating < 1 || input.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}

	profID := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()

	found := -1
	for i, prof := range s.professors {
		if prof.ID == profID {
			found = i
			break
		}
	}
	if found < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "professor not found"})
		return
	}

	review := api.Review{
		ID:          uuid.New().String(),
		ProfessorID: profID,
		AuthorID:    c.GetString("user_id"),
		Rating:      input.Rating,
		Text:        input.Text,
		CreatedAt:   time.Now(),
	}
	s.reviews[profID] = append(s.reviews[profID], review)

	prof := &s.professors[found]
	prof.AvgRating = (prof.AvgRating*float64(prof.ReviewCount) + float64(input.Rating)) / float64(prof.ReviewCount+1)
	prof.ReviewCount++

	s.recordAudit(c.GetString("user_email"), "review.submit")
	c.JSON(http.StatusCreated, review)
}

func (s *Server) handleListBookmarks(c *gin.Context) {
	userID := c.GetString("user_id")
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, append([]api.Bookmark{}, s.bookmarks[userID]...))
}

func (s *Server) handleAddBookmark(c *gin.Context) {
	var req struct {
		ProfessorID string `json:"professorId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProfessorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "professorId is required"})
		return
	}

	userID := c.GetString("user_id")
	bookmark := api.Bookmark{
		ID:          uuid.New().String(),
		ProfessorID: req.ProfessorID,
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookmarks[userID] = append(s.bookmarks[userID], bookmark)
	c.JSON(http.StatusCreated, bookmark)
}

func (s *Server) handleRemoveBookmark(c *gin.Context) {
	userID := c.GetString("user_id")
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	marks := s.bookmarks[userID]
	for i, mark := range marks {
		if mark.ID == id {
			s.bookmarks[userID] = append(marks[:i], marks[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"deleted": id})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "bookmark not found"})
}

func (s *Server) handleListNotifications(c *gin.Context) {
	userID := c.GetString("user_id")
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, append([]api.Notification{}, s.notifications[userID]...))
}

func (s *Server) handleMarkNotificationRead(c *gin.Context) {
	userID := c.GetString("user_id")
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications[userID] {
		if s.notifications[userID][i].ID == id {
			s.notifications[userID][i].Read = true
			c.JSON(http.StatusOK, s.notifications[userID][i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
}

func (s *Server) handleListAccounts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := make([]api.Account, 0, len(s.users))
	for _, rec := range s.users {
		accounts = append(accounts, api.Account{
			ID:        rec.ID,
			Email:     rec.Email,
			Name:      rec.Name,
			Role:      string(rec.Role),
			CreatedAt: rec.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, accounts)
}

func (s *Server) handleListReports(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, append([]api.Report{}, s.reports...))
}

func (s *Server) handleResolveReport(c *gin.Context) {
	var req struct {
		Resolution string `json:"resolution"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Resolution == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resolution is required"})
		return
	}

	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reports {
		if s.reports[i].ID == id {
			s.reports[i].Status = req.Resolution
			s.recordAudit(c.GetString("user_email"), "report.resolve")
			c.JSON(http.StatusOK, s.reports[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
}

func (s *Server) handleListAuditEvents(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, append([]api.AuditEvent{}, s.audit...))
}
