package ports

import (
	"context"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
)

// ProvisionInput carries the fields for a privileged account.
type ProvisionInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role // director, manager, or admin
}

// AccountService provisions privileged accounts (director / manager / admin).
type AccountService interface {
	Provision(ctx context.Context, input ProvisionInput) (*domain.User, error)
}
