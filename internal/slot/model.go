package slot

import (
	"github.com/nekogravitycat/smart-parking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.NotFound("slot not found")
	ErrNumberRequired = apperror.InvalidInput("slot number is required")
	ErrNumberTaken    = apperror.Conflict("slot already exists")
	ErrInvalidStatus  = apperror.InvalidInput("invalid slot status")
	ErrOccupied       = apperror.Conflict("slot is occupied")
	ErrOccupyViaEdit  = apperror.InvalidInput("a slot can only become occupied by booking it")
)

// Status is the binary occupancy flag of a slot.
type Status string

const (
	StatusFree     Status = "free"
	StatusOccupied Status = "occupied"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusFree || s == StatusOccupied
}

// Slot is a physical parking space.
// Status is occupied exactly when DriverID is set.
type Slot struct {
	ID       int64
	Number   string
	Status   Status
	DriverID *int64

	// DriverUserID is the occupant's external user id, joined on read.
	DriverUserID *int64
}

// IsFree reports whether nobody occupies the slot.
func (s *Slot) IsFree() bool {
	return s.Status == StatusFree
}

// Filter defines pagination for listing slots.
type Filter struct {
	Page     int
	PageSize int
}
