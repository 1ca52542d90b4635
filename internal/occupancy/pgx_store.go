package occupancy

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/nekogravitycat/smart-parking-backend/internal/booking"
	"github.com/nekogravitycat/smart-parking-backend/internal/db"
	"github.com/nekogravitycat/smart-parking-backend/internal/driver"
	"github.com/nekogravitycat/smart-parking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/smart-parking-backend/internal/slot"
)

const constraintSlotDriverKey = "slots_driver_id_key"

// Pool is satisfied by *pgxpool.Pool.
type Pool interface {
	db.Querier
	db.TxBeginner
}

type pgxStore struct {
	pool Pool
}

// NewPgxStore creates a Store backed by PostgreSQL.
func NewPgxStore(pool Pool) Store {
	return &pgxStore{pool: pool}
}

func reposOn(q db.Querier) Repos {
	return Repos{
		Slots:    slot.NewPgxRepository(q),
		Drivers:  driver.NewPgxRepository(q),
		Bookings: booking.NewPgxRepository(q),
	}
}

func (s *pgxStore) WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(ctx, reposOn(tx))
	})
	switch {
	case err == nil:
		return nil
	case db.IsUniqueViolation(err, constraintSlotDriverKey):
		return apperror.Wrap(err, ErrDriverAlreadyParked.Code, ErrDriverAlreadyParked.Message)
	case db.IsUniqueViolation(err, ""), db.IsSerializationConflict(err):
		return apperror.Wrap(err, ErrConcurrentUpdate.Code, ErrConcurrentUpdate.Message)
	}
	return err
}

func (s *pgxStore) Repos() Repos {
	return reposOn(s.pool)
}
