package booking

import (
	"time"
)

// Booking is the immutable record of one completed occupancy session.
type Booking struct {
	ID          int64
	SlotNumber  string
	UserID      int64
	OwnerName   string
	VehicleName string
	EntryTime   time.Time
	ExitTime    time.Time
	CreatedAt   time.Time
}

// Filter selects booking history. A UserID of AllUsers selects every driver.
type Filter struct {
	UserID int64
}
