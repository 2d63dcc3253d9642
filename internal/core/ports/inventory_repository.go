package ports

import (
	"context"
	"time"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
)

// EntryUpdate is the reconciliation payload applied to an inventory entry.
// Items always replaces the stored list; UploadDate and editor metadata are
// applied only when set. The repository must apply the whole update in a
// single find-and-modify round trip.
type EntryUpdate struct {
	FarmID     *string
	Items      []domain.LineItem
	UploadDate *time.Time
	UpdatedBy  string
	UpdatedAt  time.Time
}

// InventoryRepository defines persistence operations for inventory entries.
type InventoryRepository interface {
	Insert(ctx context.Context, e *domain.InventoryEntry) (*domain.InventoryEntry, error)
	// UpdateByID atomically applies upd to the entry with the given id and
	// returns the new document. Returns domain.ErrEntryNotFound on miss.
	UpdateByID(ctx context.Context, id string, upd EntryUpdate) (*domain.InventoryEntry, error)
	// UpdateByFarm behaves like UpdateByID but targets the newest entry
	// belonging to farmID.
	UpdateByFarm(ctx context.Context, farmID string, upd EntryUpdate) (*domain.InventoryEntry, error)
	// FindRange returns entries whose upload date lies in [from, to], in the
	// database's stable return order.
	FindRange(ctx context.Context, from, to time.Time) ([]*domain.InventoryEntry, error)
	DeleteByFarm(ctx context.Context, farmID string) error
}
