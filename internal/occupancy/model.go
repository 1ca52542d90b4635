package occupancy

import (
	"time"

	"github.com/nekogravitycat/smart-parking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/smart-parking-backend/internal/slot"
)

var (
	ErrSlotTaken           = apperror.Conflict("slot already booked")
	ErrDriverAlreadyParked = apperror.Conflict("driver already occupies a slot")
	ErrNotBookedByUser     = apperror.NotFound("slot not found or not booked by this user")
	ErrNoSlotForDriver     = apperror.NotFound("no slot booked by this driver")
	ErrNotOccupant         = apperror.Forbidden("slot is not booked by this user")
	ErrConcurrentUpdate    = apperror.Conflict("slot was modified concurrently, please retry")
)

// Operation names used in logs and metrics.
const (
	OpBook   = "book"
	OpCancel = "cancel"
	OpExit   = "exit"
)

// Occupancy is the public view of a single slot.
type Occupancy struct {
	SlotID       int64
	Number       string
	Status       slot.Status
	DriverUserID *int64
}

// DriverOccupancy is the slot a driver currently holds.
type DriverOccupancy struct {
	SlotID   int64
	Number   string
	Status   slot.Status
	BookedAt *time.Time
}
