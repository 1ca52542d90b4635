package driver

import (
	"time"

	"github.com/nekogravitycat/smart-parking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.NotFound("driver not found")
	ErrUserIDTaken         = apperror.Conflict("user id already exists")
	ErrFieldsRequired      = apperror.InvalidInput("all fields are required")
	ErrReservedUserID      = apperror.InvalidInput("user id is reserved")
	ErrEmptyField          = apperror.InvalidInput("profile fields cannot be empty")
	ErrLoginFailed         = apperror.Unauthorized("login failed")
	ErrIncorrectPassword   = apperror.Unauthorized("incorrect old password")
	ErrOldPasswordRequired = apperror.InvalidInput("old password is required to set a new password")
)

// Driver is a registered vehicle owner.
// EntryTime is set while the driver occupies a slot; ExitTime records the
// most recent exit.
type Driver struct {
	ID           int64
	UserID       int64
	OwnerName    string
	VehicleName  string
	BankNumber   string
	PasswordHash string
	Role         string
	EntryTime    *time.Time
	ExitTime     *time.Time
	CreatedAt    time.Time

	// Slot is the slot the driver currently occupies, derived from slots.driver_id.
	Slot *SlotRef
}

// SlotRef is the brief view of a driver's current slot.
type SlotRef struct {
	ID     int64
	Number string
	Status string
}

// SlotNumber returns the occupied slot's number, or nil.
func (d *Driver) SlotNumber() *string {
	if d.Slot == nil {
		return nil
	}
	n := d.Slot.Number
	return &n
}
