package ports

import (
	"context"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
)

// FarmUpdate lists the mutable farm fields. Nil means "leave unchanged".
type FarmUpdate struct {
	Name      *string
	Location  *string
	Size      *float64
	Stuff     *[]string
	ManagerID *string
}

// FarmRepository defines persistence operations for farms.
type FarmRepository interface {
	Create(ctx context.Context, f *domain.Farm) (*domain.Farm, error)
	FindByID(ctx context.Context, id string) (*domain.Farm, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Farm, error)
	// List returns one page of farms in stable (insertion) order.
	List(ctx context.Context, page, limit int) ([]*domain.Farm, error)
	// Update applies upd atomically and returns the updated document.
	Update(ctx context.Context, id string, upd FarmUpdate) (*domain.Farm, error)
	UpdateStuff(ctx context.Context, id string, stuff []string) error
	Delete(ctx context.Context, id string) error
}
