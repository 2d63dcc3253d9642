package ports

import (
	"context"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
)

// CreateFarmInput carries the fields for a new farm.
type CreateFarmInput struct {
	Name      string
	Location  string
	Size      float64
	Stuff     []string
	ManagerID string
}

// FarmService defines the farm use cases.
type FarmService interface {
	Create(ctx context.Context, input CreateFarmInput) (*domain.Farm, error)
	Get(ctx context.Context, id string) (*domain.Farm, error)
	List(ctx context.Context, page, limit int) ([]*domain.Farm, error)
	Update(ctx context.Context, id string, upd FarmUpdate) (*domain.Farm, error)
	// Delete removes the farm and cascades: assignment references and the
	// farm's inventory entries go with it.
	Delete(ctx context.Context, id string) error
	// ListForUser returns the farms assigned to userID.
	ListForUser(ctx context.Context, userID string) ([]*domain.Farm, error)
	// FirstForUser returns the user's primary (first assigned) farm.
	FirstForUser(ctx context.Context, userID string) (*domain.Farm, error)
	// UpdateStuff replaces the farm's catalog; the caller must be assigned
	// to the farm.
	UpdateStuff(ctx context.Context, userID, farmID string, stuff []string) error
}
