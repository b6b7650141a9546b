package repository

import (
	"context"
	"errors"

	"github.com/mverhoef/authgate/internal/core/domain"
)

// ErrNotFound is returned by lookups when no user matches. Absence is a
// normal outcome for callers, not a store fault.
var ErrNotFound = errors.New("user not found")

// ErrDuplicateUsername is returned by Create when the store's uniqueness
// constraint rejects the insert. The constraint is the final authority on
// username uniqueness; callers must treat this as a lost race, not a fault.
var ErrDuplicateUsername = errors.New("username already exists")

type UserRepository interface {
	// Create inserts the user and returns the id assigned by the store.
	Create(ctx context.Context, user *domain.User) (int64, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
