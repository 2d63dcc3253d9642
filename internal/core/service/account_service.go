package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
	"github.com/chiraitori/farm-management-api/internal/core/ports"
)

// AccountService provisions privileged accounts. Exactly one role flag is
// set per account, so resolution is unambiguous for these users.
type AccountService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewAccountService(users ports.UserRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{users: users, logger: logger}
}

func (s *AccountService) Provision(ctx context.Context, input ports.ProvisionInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	switch input.Role {
	case domain.RoleDirector:
		user.IsDirector = true
	case domain.RoleManager:
		user.IsManager = true
	case domain.RoleAdmin:
		user.IsAdmin = true
	default:
		return nil, domain.ErrMissingFields
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(input.Role)).Msg("account provisioned")
	return created, nil
}
