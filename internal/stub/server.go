// Package stub is an in-memory CampusRate backend implementing the
// collaborator contract the client core depends on. It exists for local
// development and for exercising the client end to end; it holds no
// durable state and needs no external services.
package stub

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/campusrate/campusrate-go/internal/api"
	"github.com/campusrate/campusrate-go/internal/token"
)

// Server is the in-memory backend.
type Server struct {
	signer *token.Signer
	logger *zap.Logger
	engine *gin.Engine

	mu            sync.Mutex
	users         map[string]*userRecord
	institutes    []api.Institute
	professors    []api.Professor
	reviews       map[string][]api.Review
	bookmarks     map[string][]api.Bookmark
	notifications map[string][]api.Notification
	reports       []api.Report
	audit         []api.AuditEvent
}

// New creates a stub server signing session tokens with the given
// secret and TTL.
func New(jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		signer:        token.NewSigner(jwtSecret, tokenTTL),
		logger:        logger,
		users:         make(map[string]*userRecord),
		reviews:       make(map[string][]api.Review),
		bookmarks:     make(map[string][]api.Bookmark),
		notifications: make(map[string][]api.Notification),
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(s.requestLogger())
	engine.Use(s.recovery())
	s.routes(engine)
	s.engine = engine

	return s
}

// Handler returns the HTTP handler, suitable for http.Server and
// httptest.Server alike.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/signup", s.handleSignUp)
		auth.POST("/signin", s.handleSignIn)
		auth.POST("/verify-otp", s.handleVerifyOTP)
	}

	r.GET("/institutes", s.handleListInstitutes)
	r.GET("/institutes/:id", s.handleGetInstitute)
	r.GET("/professors", s.handleSearchProfessors)
	r.GET("/professors/:id", s.handleGetProfessor)
	r.GET("/professors/:id/reviews", s.handleListReviews)

	authed := r.Group("/")
	authed.Use(s.requireAuth())
	{
		authed.POST("/professors/:id/reviews", s.handleSubmitReview)
		authed.GET("/bookmarks", s.handleListBookmarks)
		authed.POST("/bookmarks", s.handleAddBookmark)
		authed.DELETE("/bookmarks/:id", s.handleRemoveBookmark)
		authed.GET("/notifications", s.handleListNotifications)
		authed.PUT("/notifications/:id/read", s.handleMarkNotificationRead)

		admin := authed.Group("/admin")
		admin.Use(s.requireRole(token.RoleAdmin))
		{
			admin.GET("/users", s.handleListAccounts)
			admin.GET("/reports", s.handleListReports)
			admin.PUT("/reports/:id", s.handleResolveReport)
			admin.GET("/audit", s.handleListAuditEvents)
		}
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
		}()
		c.Next()
	}
}

// requireAuth validates the bearer token and stashes its claims.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := s.signer.Validate(header[7:])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		role, err := token.ParseRole(claims.Role)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", role)
		c.Next()
	}
}

func (s *Server) requireRole(want token.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.MustGet("user_role").(token.Role) != want {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
