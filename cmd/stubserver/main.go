package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/campusrate/campusrate-go/internal/api"
	"github.com/campusrate/campusrate-go/internal/config"
	"github.com/campusrate/campusrate-go/internal/stub"
	"github.com/campusrate/campusrate-go/internal/token"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.IsDevelopment() {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting CampusRate stub backend", zap.String("env", cfg.Env))

	srv := stub.New(cfg.Stub.JWTSecret, cfg.Stub.TokenTTL, logger)
	seedDemoData(srv, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Stub.Port),
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Stub.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}

// seedDemoData installs a small catalog and three demo accounts, one
// per role, so the client can be pointed at the stub immediately.
func seedDemoData(srv *stub.Server, logger *zap.Logger) {
	srv.SeedCatalog(
		[]api.Institute{
			{ID: "i-1", Name: "Miskatonic University", City: "Arkham", Website: "https://miskatonic.example.edu"},
			{ID: "i-2", Name: "Unseen University", City: "Ankh-Morpork"},
		},
		[]api.Professor{
			{ID: "p-1", InstituteID: "i-1", Name: "Dr. Grace Hopper", Department: "Computer Science"},
			{ID: "p-2", InstituteID: "i-1", Name: "Dr. Henry Armitage", Department: "Literature"},
			{ID: "p-3", InstituteID: "i-2", Name: "Dr. Mustrum Ridcully", Department: "Applied Magic"},
		},
	)

	demo := []struct {
		email string
		name  string
		role  token.Role
	}{
		{"student@example.com", "Demo Student", token.RoleStudent},
		{"professor@example.com", "Demo Professor", token.RoleProfessor},
		{"admin@example.com", "Demo Admin", token.RoleAdmin},
	}
	for _, d := range demo {
		if _, err := srv.SeedUser(d.email, "Abcd123!", d.name, d.role, false); err != nil {
			logger.Warn("failed to seed demo account", zap.String("email", d.email), zap.Error(err))
			continue
		}
		logger.Info("seeded demo account", zap.String("email", d.email), zap.String("role", string(d.role)))
	}
}
