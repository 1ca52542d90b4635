package occupancy

import (
	"context"
	"sync"
	"time"

	"github.com/nekogravitycat/smart-parking-backend/internal/booking"
	"github.com/nekogravitycat/smart-parking-backend/internal/driver"
	"github.com/nekogravitycat/smart-parking-backend/internal/slot"
)

// memState is one snapshot of the tables. Committed snapshots are never mutated.
type memState struct {
	slots    map[int64]slot.Slot
	drivers  map[int64]driver.Driver
	bookings []booking.Booking
}

func (s *memState) clone() *memState {
	c := &memState{
		slots:    make(map[int64]slot.Slot, len(s.slots)),
		drivers:  make(map[int64]driver.Driver, len(s.drivers)),
		bookings: append([]booking.Booking(nil), s.bookings...),
	}
	for k, v := range s.slots {
		c.slots[k] = v
	}
	for k, v := range s.drivers {
		c.drivers[k] = v
	}
	return c
}

// memStore serializes transactions with a mutex and applies a transaction's
// writes only when it commits.
type memStore struct {
	mu    sync.Mutex
	state *memState

	// failBookings makes every booking insert fail with this error.
	failBookings error
}

func newMemStore() *memStore {
	return &memStore{state: &memState{
		slots:   map[int64]slot.Slot{},
		drivers: map[int64]driver.Driver{},
	}}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	work := m.state.clone()
	if err := fn(ctx, m.reposOn(work)); err != nil {
		return err
	}
	m.state = work
	return nil
}

func (m *memStore) Repos() Repos {
	m.mu.Lock()
	st := m.state
	m.mu.Unlock()
	return m.reposOn(st)
}

func (m *memStore) reposOn(st *memState) Repos {
	return Repos{
		Slots:    memSlots{st},
		Drivers:  memDrivers{st},
		Bookings: memBookings{st: st, fail: m.failBookings},
	}
}

func (m *memStore) snapshot() *memState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *memStore) addSlot(number string) int64 {
	id := int64(len(m.state.slots) + 1)
	m.state.slots[id] = slot.Slot{ID: id, Number: number, Status: slot.StatusFree}
	return id
}

func (m *memStore) addDriver(userID int64) int64 {
	id := int64(len(m.state.drivers) + 1)
	m.state.drivers[id] = driver.Driver{
		ID:          id,
		UserID:      userID,
		OwnerName:   "Owner",
		VehicleName: "Car",
		BankNumber:  "000",
		Role:        "user",
	}
	return id
}

func (st *memState) driverByUserID(userID int64) (driver.Driver, bool) {
	for _, d := range st.drivers {
		if d.UserID == userID {
			return d, true
		}
	}
	return driver.Driver{}, false
}

type memSlots struct{ st *memState }

func (r memSlots) view(s slot.Slot) *slot.Slot {
	if s.DriverID != nil {
		if d, ok := r.st.drivers[*s.DriverID]; ok {
			uid := d.UserID
			s.DriverUserID = &uid
		}
	}
	return &s
}

func (r memSlots) GetByID(_ context.Context, id int64) (*slot.Slot, error) {
	s, ok := r.st.slots[id]
	if !ok {
		return nil, slot.ErrNotFound
	}
	return r.view(s), nil
}

func (r memSlots) GetByIDForUpdate(ctx context.Context, id int64) (*slot.Slot, error) {
	return r.GetByID(ctx, id)
}

func (r memSlots) GetByDriverID(_ context.Context, driverID int64) (*slot.Slot, error) {
	for _, s := range r.st.slots {
		if s.DriverID != nil && *s.DriverID == driverID {
			return r.view(s), nil
		}
	}
	return nil, slot.ErrNotFound
}

func (r memSlots) SetOccupant(_ context.Context, id int64, driverID *int64) error {
	s, ok := r.st.slots[id]
	if !ok {
		return slot.ErrNotFound
	}
	if driverID != nil {
		for otherID, other := range r.st.slots {
			if otherID != id && other.DriverID != nil && *other.DriverID == *driverID {
				return ErrDriverAlreadyParked
			}
		}
		v := *driverID
		s.DriverID = &v
		s.Status = slot.StatusOccupied
	} else {
		s.DriverID = nil
		s.Status = slot.StatusFree
	}
	r.st.slots[id] = s
	return nil
}

type memDrivers struct{ st *memState }

func (r memDrivers) GetByUserID(_ context.Context, userID int64) (*driver.Driver, error) {
	d, ok := r.st.driverByUserID(userID)
	if !ok {
		return nil, driver.ErrNotFound
	}
	return &d, nil
}

func (r memDrivers) GetByUserIDForUpdate(ctx context.Context, userID int64) (*driver.Driver, error) {
	return r.GetByUserID(ctx, userID)
}

func (r memDrivers) SetEntryTime(_ context.Context, id int64, t time.Time) error {
	d, ok := r.st.drivers[id]
	if !ok {
		return driver.ErrNotFound
	}
	d.EntryTime = &t
	r.st.drivers[id] = d
	return nil
}

func (r memDrivers) SetExitTime(_ context.Context, id int64, t time.Time) error {
	d, ok := r.st.drivers[id]
	if !ok {
		return driver.ErrNotFound
	}
	d.ExitTime = &t
	r.st.drivers[id] = d
	return nil
}

type memBookings struct {
	st   *memState
	fail error
}

func (r memBookings) Create(_ context.Context, b *booking.Booking) error {
	if r.fail != nil {
		return r.fail
	}
	b.ID = int64(len(r.st.bookings) + 1)
	r.st.bookings = append(r.st.bookings, *b)
	return nil
}
