package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mverhoef/authgate/internal/api/middleware"
	"github.com/mverhoef/authgate/internal/core/service"
	"github.com/mverhoef/authgate/internal/infrastructure/sqlite"
	"github.com/mverhoef/authgate/pkg/config"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

// testEnv holds all test dependencies
type testEnv struct {
	db          *sqlite.DB
	router      *gin.Engine
	authService *service.AuthService
}

// setupTestEnv creates a test environment with an in-memory SQLite database
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		JWTSecretKey:    testSecret,
		JWTAlgorithm:    "HS256",
		TokenTTLSeconds: 3600,
		BcryptCost:      bcrypt.MinCost,
	}

	userRepo := sqlite.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, cfg)
	authHandler := NewAuthHandler(authService, zap.NewNop())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/auth/register", authHandler.Register)
	router.POST("/api/auth/login", authHandler.Login)
	router.GET("/api/auth/me", middleware.AuthMiddleware(authService), authHandler.Me)

	return &testEnv{
		db:          db,
		router:      router,
		authService: authService,
	}
}

// postJSON performs a JSON POST against the test router
func (env *testEnv) postJSON(t *testing.T, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// postForm performs a url-encoded POST against the test router
func (env *testEnv) postForm(t *testing.T, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, r io.Reader, v interface{}) {
	t.Helper()

	if err := json.NewDecoder(r).Decode(v); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}
