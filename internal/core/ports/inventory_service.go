package ports

import (
	"context"
	"time"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
)

// UploadEntryInput carries a new inventory upload.
type UploadEntryInput struct {
	FarmID     string
	Items      []domain.LineItem
	UploadDate *time.Time // nil = now
}

// UpdateEntryInput carries an inventory reconciliation request. EntryID takes
// precedence over FarmID when it is a well-formed id; at least one selector
// is required.
type UpdateEntryInput struct {
	EntryID    string
	FarmID     string
	Items      []domain.LineItem
	UploadDate *time.Time // nil = keep the stored upload date
	EditorID   string
}

// CalendarEntry is the per-entry view inside a calendar day bucket.
type CalendarEntry struct {
	FarmID string            `json:"farmId"`
	Items  []domain.LineItem `json:"items"`
}

// InventoryService defines the inventory use cases.
type InventoryService interface {
	Upload(ctx context.Context, input UploadEntryInput) (*domain.InventoryEntry, error)
	Update(ctx context.Context, input UpdateEntryInput) (*domain.InventoryEntry, error)
	// Calendar returns the month's entries keyed by YYYY-MM-DD. Days without
	// entries are absent from the map.
	Calendar(ctx context.Context, year, month int) (map[string][]CalendarEntry, error)
	// ExportMonth renders the month's entries as an xlsx workbook.
	ExportMonth(ctx context.Context, year, month int) ([]byte, error)
}
