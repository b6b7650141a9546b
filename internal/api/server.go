package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mverhoef/authgate/internal/api/handler"
	"github.com/mverhoef/authgate/internal/api/middleware"
	"github.com/mverhoef/authgate/internal/core/service"
	"github.com/mverhoef/authgate/pkg/config"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
	logger *zap.Logger
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, authService *service.AuthService, logger *zap.Logger) *Server {
	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandlerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	authHandler := handler.NewAuthHandler(authService, logger)

	// Public routes (no auth required)
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes (auth required)
	auth.GET("/me", middleware.AuthMiddleware(authService), authHandler.Me)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return &Server{
		router: router,
		config: cfg,
		logger: logger,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.APIHost, s.config.APIPort)

	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	s.logger.Info("starting HTTP server", zap.String("addr", addr))
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
