package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/mverhoef/authgate/internal/api/dto"
	"github.com/mverhoef/authgate/internal/api/middleware"
	"github.com/mverhoef/authgate/internal/core/repository"
	"github.com/mverhoef/authgate/internal/core/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	req, ok := h.bindCredentials(c)
	if !ok {
		return
	}

	token, err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Msg: "Username is already taken"})
			return
		}
		h.serverError(c, "register failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	req, ok := h.bindCredentials(c)
	if !ok {
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Msg: "Invalid credentials"})
			return
		}
		h.serverError(c, "login failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Msg: "Unauthorized"})
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), claims.User.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Msg: "Unauthorized"})
			return
		}
		h.serverError(c, "user lookup failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.MeResponse{
		User: dto.UserInfo{ID: user.ID, Username: user.Username},
	})
}

// bindCredentials binds a JSON or form body and reports every failing field.
// It writes the error response itself and returns ok=false when binding fails.
func (h *AuthHandler) bindCredentials(c *gin.Context) (*dto.CredentialsRequest, bool) {
	var req dto.CredentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
			Errors: fieldErrors(err),
		})
		return nil, false
	}
	return &req, true
}

func fieldErrors(err error) []dto.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []dto.FieldError{{Field: "body", Msg: "Invalid request body"}}
	}

	out := make([]dto.FieldError, 0, len(verrs))
	for _, ve := range verrs {
		msg := fmt.Sprintf("%s is %s", ve.Field(), ve.Tag())
		if ve.Tag() == "required" {
			msg = fmt.Sprintf("%s is required", ve.Field())
		}
		out = append(out, dto.FieldError{Field: ve.Field(), Msg: msg})
	}
	return out
}

// serverError logs the failure with full detail and returns an opaque body.
func (h *AuthHandler) serverError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Msg: "Server error"})
}
