package domain

import "errors"

var ErrFarmNotFound = errors.New("farm not found")
var ErrNoFarmAssigned = errors.New("no farm assigned to user")
var ErrNotAssigned = errors.New("farm not found or not authorized")

// Farm is a single production site. Stuff is the authoritative catalog of
// item names a manager can log inventory against.
type Farm struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Size      float64  `json:"size"`
	Stuff     []string `json:"stuff,omitempty"`
	ManagerID string   `json:"managerId,omitempty"`
}
