package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mverhoef/authgate/internal/core/domain"
	"github.com/mverhoef/authgate/internal/core/repository"
	"github.com/mverhoef/authgate/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a bcrypt hash of an unguessable value, compared against when a
// login names an unknown user so that lookup misses cost roughly the same as
// password mismatches.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthService struct {
	userRepo     repository.UserRepository
	jwtSecret    []byte
	jwtAlgorithm string
	tokenTTL     time.Duration
	bcryptCost   int
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtSecret:    []byte(cfg.JWTSecretKey),
		jwtAlgorithm: cfg.JWTAlgorithm,
		tokenTTL:     cfg.TokenTTL(),
		bcryptCost:   cfg.BcryptCost,
	}
}

// HashPassword hashes a password using bcrypt. The salt is generated per
// password and embedded in the returned hash.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Register creates a user and returns a signed token bound to the new user's
// id. The lookup is an early courtesy check only; a duplicate reported by the
// insert (a lost race) yields the same ErrUsernameTaken.
func (s *AuthService) Register(ctx context.Context, username, password string) (string, error) {
	_, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return "", ErrUsernameTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return "", err
	}

	id, err := s.userRepo.Create(ctx, domain.NewUser(username, hash))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return "", ErrUsernameTaken
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return s.generateJWT(id)
}

// Login verifies the given credentials and returns a signed token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.VerifyPassword(password, dummyHash)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if !s.VerifyPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.generateJWT(user.ID)
}

// GetUser returns the user identified by a token's id claim.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if token.Method.Alg() != s.jwtAlgorithm {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}

// generateJWT generates a signed token carrying the user id
func (s *AuthService) generateJWT(userID int64) (string, error) {
	now := time.Now()

	claims := TokenClaims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "authgate",
			ID:        uuid.NewString(),
		},
	}

	var signingMethod jwt.SigningMethod
	switch s.jwtAlgorithm {
	case "HS384":
		signingMethod = jwt.SigningMethodHS384
	case "HS512":
		signingMethod = jwt.SigningMethodHS512
	default:
		signingMethod = jwt.SigningMethodHS256
	}

	token := jwt.NewWithClaims(signingMethod, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// UserClaim identifies the token's subject user
type UserClaim struct {
	ID int64 `json:"id"`
}
