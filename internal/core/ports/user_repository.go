package ports

import (
	"context"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
)

// UserUpdate lists the mutable user fields. Nil means "leave unchanged".
type UserUpdate struct {
	Name          *string
	Email         *string
	PasswordHash  *string
	IsAdmin       *bool
	IsDirector    *bool
	IsManager     *bool
	IsSeller      *bool
	AssignedFarms *[]string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts a user; returns domain.ErrEmailTaken when the email is
	// already registered.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) error
	Delete(ctx context.Context, id string) error
	// SetPassword replaces the stored password hash for one user.
	SetPassword(ctx context.Context, id, passwordHash string) error
	// IsAssigned reports whether farmID is in the user's assignedFarms.
	IsAssigned(ctx context.Context, userID, farmID string) (bool, error)
	// PullFarm removes farmID from every user's assignedFarms list.
	PullFarm(ctx context.Context, farmID string) error
}
