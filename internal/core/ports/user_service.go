package ports

import (
	"context"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
)

// CreateUserInput carries the fields for a new user.
type CreateUserInput struct {
	Name          string
	Email         string
	Password      string
	IsAdmin       bool
	IsDirector    bool
	IsManager     bool
	IsSeller      bool
	AssignedFarms []string
}

// UpdateUserInput mirrors UserUpdate but takes a plaintext password.
type UpdateUserInput struct {
	Name          *string
	Email         *string
	Password      *string
	IsAdmin       *bool
	IsDirector    *bool
	IsManager     *bool
	IsSeller      *bool
	AssignedFarms *[]string
}

// UserService defines the user administration use cases.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) error
	Delete(ctx context.Context, id string) error
}
