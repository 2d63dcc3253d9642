package domain

import (
	"errors"
	"time"
)

var ErrEntryNotFound = errors.New("inventory entry not found")
var ErrMissingSelector = errors.New("either an entry id or a farm id is required")
var ErrInvalidMonth = errors.New("invalid year or month")

// LineItem is one (name, quantity, note) row inside an entry. Quantity stays
// free-form text: real uploads contain values like "about 10" or "2 bags",
// so coercing to a number would lose information.
type LineItem struct {
	Name     string `json:"name" bson:"name"`
	Quantity string `json:"quantity" bson:"quantity"`
	Note     string `json:"note,omitempty" bson:"note,omitempty"`
}

// InventoryEntry is one upload of a farm's inventory. UploadDate is always a
// UTC instant; its calendar day decides which bucket the entry lands in on
// the calendar view.
type InventoryEntry struct {
	ID         string     `json:"id"`
	FarmID     string     `json:"farmId"`
	Items      []LineItem `json:"items"`
	UploadDate time.Time  `json:"uploadDate"`
	UpdatedBy  string     `json:"updatedBy,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// Day returns the YYYY-MM-DD calendar key for the entry's upload date.
func (e *InventoryEntry) Day() string {
	return e.UploadDate.UTC().Format("2006-01-02")
}
