package occupancy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/smart-parking-backend/internal/booking"
	"github.com/nekogravitycat/smart-parking-backend/internal/driver"
	"github.com/nekogravitycat/smart-parking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/smart-parking-backend/internal/slot"
)

// Recorder receives the outcome of every state transition.
type Recorder interface {
	Transition(op string)
	Failure(op, reason string)
}

type nopRecorder struct{}

func (nopRecorder) Transition(string)      {}
func (nopRecorder) Failure(string, string) {}

// Service is the slot occupancy state machine. Each mutating call runs in a
// single store transaction.
type Service interface {
	// BookSlot marks a free slot occupied by the driver and returns the entry time.
	BookSlot(ctx context.Context, slotID, userID int64) (time.Time, error)
	// CancelSlot frees a slot without writing history. Cancelling a free slot succeeds.
	CancelSlot(ctx context.Context, slotID int64) error
	// CancelSlotHeldBy is CancelSlot restricted to the slot's current occupant.
	CancelSlotHeldBy(ctx context.Context, slotID, userID int64) error
	// ExitSlot frees the driver's slot and records a booking.
	ExitSlot(ctx context.Context, slotID, userID int64) error
	GetOccupancy(ctx context.Context, slotID int64) (*Occupancy, error)
	GetOccupancyByDriver(ctx context.Context, userID int64) (*DriverOccupancy, error)
}

type service struct {
	store    Store
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates the occupancy engine. recorder and logger may be nil.
func NewService(store Store, recorder Recorder, logger *zap.Logger) Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		store:    store,
		recorder: recorder,
		logger:   logger.Named("occupancy"),
		now:      serverNow,
	}
}

// serverNow is truncated to the microsecond precision timestamptz stores, so
// returned times compare equal to what is read back later.
func serverNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (s *service) BookSlot(ctx context.Context, slotID, userID int64) (time.Time, error) {
	var entry time.Time
	err := s.store.WithinTx(ctx, func(ctx context.Context, r Repos) error {
		sl, err := r.Slots.GetByIDForUpdate(ctx, slotID)
		if err != nil {
			return err
		}
		if !sl.IsFree() {
			return ErrSlotTaken
		}

		d, err := r.Drivers.GetByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if _, err := r.Slots.GetByDriverID(ctx, d.ID); err == nil {
			return ErrDriverAlreadyParked
		} else if !errors.Is(err, slot.ErrNotFound) {
			return err
		}

		entry = s.now()
		if err := r.Slots.SetOccupant(ctx, sl.ID, &d.ID); err != nil {
			return err
		}
		return r.Drivers.SetEntryTime(ctx, d.ID, entry)
	})
	if err != nil {
		s.fail(OpBook, slotID, userID, err)
		return time.Time{}, err
	}

	s.done(OpBook, slotID, userID)
	return entry, nil
}

func (s *service) CancelSlot(ctx context.Context, slotID int64) error {
	return s.cancel(ctx, slotID, nil)
}

func (s *service) CancelSlotHeldBy(ctx context.Context, slotID, userID int64) error {
	return s.cancel(ctx, slotID, &userID)
}

func (s *service) cancel(ctx context.Context, slotID int64, heldBy *int64) error {
	changed := false
	err := s.store.WithinTx(ctx, func(ctx context.Context, r Repos) error {
		sl, err := r.Slots.GetByIDForUpdate(ctx, slotID)
		if err != nil {
			return err
		}
		if sl.IsFree() {
			return nil
		}

		if heldBy != nil {
			d, err := r.Drivers.GetByUserID(ctx, *heldBy)
			if errors.Is(err, driver.ErrNotFound) {
				return ErrNotOccupant
			}
			if err != nil {
				return err
			}
			if sl.DriverID == nil || *sl.DriverID != d.ID {
				return ErrNotOccupant
			}
		}

		changed = true
		return r.Slots.SetOccupant(ctx, sl.ID, nil)
	})

	var userID int64
	if heldBy != nil {
		userID = *heldBy
	}
	if err != nil {
		s.fail(OpCancel, slotID, userID, err)
		return err
	}
	if changed {
		s.done(OpCancel, slotID, userID)
	}
	return nil
}

func (s *service) ExitSlot(ctx context.Context, slotID, userID int64) error {
	err := s.store.WithinTx(ctx, func(ctx context.Context, r Repos) error {
		// Lock slot before driver, the same order BookSlot uses.
		sl, slotErr := r.Slots.GetByIDForUpdate(ctx, slotID)
		if slotErr != nil && !errors.Is(slotErr, slot.ErrNotFound) {
			return slotErr
		}

		d, err := r.Drivers.GetByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if slotErr != nil || sl.DriverID == nil || *sl.DriverID != d.ID {
			return ErrNotBookedByUser
		}
		if d.EntryTime == nil {
			return fmt.Errorf("driver %d occupies slot %d without an entry time", d.UserID, sl.ID)
		}

		exit := s.now()
		rec := &booking.Booking{
			SlotNumber:  sl.Number,
			UserID:      d.UserID,
			OwnerName:   d.OwnerName,
			VehicleName: d.VehicleName,
			EntryTime:   *d.EntryTime,
			ExitTime:    exit,
		}
		if err := r.Drivers.SetExitTime(ctx, d.ID, exit); err != nil {
			return err
		}
		if err := r.Bookings.Create(ctx, rec); err != nil {
			return err
		}
		return r.Slots.SetOccupant(ctx, sl.ID, nil)
	})
	if err != nil {
		s.fail(OpExit, slotID, userID, err)
		return err
	}

	s.done(OpExit, slotID, userID)
	return nil
}

func (s *service) GetOccupancy(ctx context.Context, slotID int64) (*Occupancy, error) {
	sl, err := s.store.Repos().Slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	return &Occupancy{
		SlotID:       sl.ID,
		Number:       sl.Number,
		Status:       sl.Status,
		DriverUserID: sl.DriverUserID,
	}, nil
}

func (s *service) GetOccupancyByDriver(ctx context.Context, userID int64) (*DriverOccupancy, error) {
	r := s.store.Repos()
	d, err := r.Drivers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sl, err := r.Slots.GetByDriverID(ctx, d.ID)
	if errors.Is(err, slot.ErrNotFound) {
		return nil, ErrNoSlotForDriver
	}
	if err != nil {
		return nil, err
	}

	return &DriverOccupancy{
		SlotID:   sl.ID,
		Number:   sl.Number,
		Status:   sl.Status,
		BookedAt: d.EntryTime,
	}, nil
}

func (s *service) done(op string, slotID, userID int64) {
	s.recorder.Transition(op)
	s.logger.Info("slot transition",
		zap.String("op", op),
		zap.Int64("slot_id", slotID),
		zap.Int64("user_id", userID),
	)
}

func (s *service) fail(op string, slotID, userID int64, err error) {
	reason := failureReason(err)
	s.recorder.Failure(op, reason)

	fields := []zap.Field{
		zap.String("op", op),
		zap.Int64("slot_id", slotID),
		zap.Int64("user_id", userID),
		zap.String("reason", reason),
		zap.Error(err),
	}
	if reason == "internal" {
		s.logger.Error("slot transition failed", fields...)
		return
	}
	s.logger.Debug("slot transition rejected", fields...)
}

func failureReason(err error) string {
	switch apperror.CodeOf(err) {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusBadRequest:
		return "invalid"
	}
	return "internal"
}
