package occupancy

import (
	"context"
	"time"

	"github.com/nekogravitycat/smart-parking-backend/internal/booking"
	"github.com/nekogravitycat/smart-parking-backend/internal/driver"
	"github.com/nekogravitycat/smart-parking-backend/internal/slot"
)

// SlotStore is the part of slot storage the engine needs.
type SlotStore interface {
	GetByID(ctx context.Context, id int64) (*slot.Slot, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*slot.Slot, error)
	GetByDriverID(ctx context.Context, driverID int64) (*slot.Slot, error)
	SetOccupant(ctx context.Context, id int64, driverID *int64) error
}

// DriverStore is the part of driver storage the engine needs.
type DriverStore interface {
	GetByUserID(ctx context.Context, userID int64) (*driver.Driver, error)
	GetByUserIDForUpdate(ctx context.Context, userID int64) (*driver.Driver, error)
	SetEntryTime(ctx context.Context, id int64, t time.Time) error
	SetExitTime(ctx context.Context, id int64, t time.Time) error
}

// BookingStore appends history records.
type BookingStore interface {
	Create(ctx context.Context, b *booking.Booking) error
}

// Repos groups the stores bound to one transaction, or to the pool for reads.
type Repos struct {
	Slots    SlotStore
	Drivers  DriverStore
	Bookings BookingStore
}

// Store runs engine operations atomically.
type Store interface {
	// WithinTx runs fn in one transaction. Any error from fn rolls back every
	// write fn made.
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
	// Repos returns non-transactional stores for plain reads.
	Repos() Repos
}
