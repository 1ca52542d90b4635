package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/nekogravitycat/smart-parking-backend/internal/db"
)

const constraintUserIDKey = "drivers_user_id_key"

// Repository defines methods for accessing driver data from storage.
type Repository interface {
	Create(ctx context.Context, d *Driver) error
	GetByUserID(ctx context.Context, userID int64) (*Driver, error)
	List(ctx context.Context) ([]*Driver, error)
	UpdateProfile(ctx context.Context, d *Driver) error

	// Occupancy methods, meant to run inside a transaction.
	GetByUserIDForUpdate(ctx context.Context, userID int64) (*Driver, error)
	SetEntryTime(ctx context.Context, id int64, t time.Time) error
	SetExitTime(ctx context.Context, id int64, t time.Time) error
}

type pgxDriverRepository struct {
	q db.Querier
}

// NewPgxRepository creates a new Repository running on a pool or a transaction.
func NewPgxRepository(q db.Querier) Repository {
	return &pgxDriverRepository{q: q}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func selectDrivers() squirrel.SelectBuilder {
	return psql.Select(
		"d.id", "d.user_id", "d.owner_name", "d.vehicle_name", "d.bank_number",
		"d.password_hash", "d.role", "d.entry_time", "d.exit_time", "d.created_at",
		"s.id", "s.slot_number", "s.status",
	).
		From("public.drivers d").
		LeftJoin("public.slots s ON s.driver_id = d.id")
}

func scanDriver(row pgx.Row) (*Driver, error) {
	var d Driver
	var slotID *int64
	var slotNumber, slotStatus *string

	if err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.OwnerName,
		&d.VehicleName,
		&d.BankNumber,
		&d.PasswordHash,
		&d.Role,
		&d.EntryTime,
		&d.ExitTime,
		&d.CreatedAt,
		&slotID,
		&slotNumber,
		&slotStatus,
	); err != nil {
		return nil, err
	}

	if slotID != nil {
		d.Slot = &SlotRef{ID: *slotID, Number: *slotNumber, Status: *slotStatus}
	}
	return &d, nil
}

func (r *pgxDriverRepository) getOne(ctx context.Context, q squirrel.SelectBuilder) (*Driver, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get driver query failed: %w", err)
	}

	d, err := scanDriver(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get driver failed: %w", err)
	}
	return d, nil
}

func (r *pgxDriverRepository) Create(ctx context.Context, d *Driver) error {
	query, args, err := psql.Insert("public.drivers").
		Columns("user_id", "owner_name", "vehicle_name", "bank_number", "password_hash", "role").
		Values(d.UserID, d.OwnerName, d.VehicleName, d.BankNumber, d.PasswordHash, d.Role).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create driver query failed: %w", err)
	}

	if err := r.q.QueryRow(ctx, query, args...).Scan(&d.ID, &d.CreatedAt); err != nil {
		if db.IsUniqueViolation(err, constraintUserIDKey) {
			return ErrUserIDTaken
		}
		return fmt.Errorf("create driver failed: %w", err)
	}
	return nil
}

func (r *pgxDriverRepository) GetByUserID(ctx context.Context, userID int64) (*Driver, error) {
	return r.getOne(ctx, selectDrivers().Where(squirrel.Eq{"d.user_id": userID}))
}

func (r *pgxDriverRepository) GetByUserIDForUpdate(ctx context.Context, userID int64) (*Driver, error) {
	return r.getOne(ctx, selectDrivers().Where(squirrel.Eq{"d.user_id": userID}).Suffix("FOR UPDATE OF d"))
}

func (r *pgxDriverRepository) List(ctx context.Context) ([]*Driver, error) {
	query, args, err := selectDrivers().OrderBy("d.created_at ASC", "d.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list drivers query failed: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list drivers failed: %w", err)
	}
	defer rows.Close()

	var drivers []*Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("scan driver failed: %w", err)
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list drivers failed: %w", err)
	}
	return drivers, nil
}

func (r *pgxDriverRepository) UpdateProfile(ctx context.Context, d *Driver) error {
	query, args, err := psql.Update("public.drivers").
		Set("owner_name", d.OwnerName).
		Set("vehicle_name", d.VehicleName).
		Set("bank_number", d.BankNumber).
		Set("password_hash", d.PasswordHash).
		Where(squirrel.Eq{"id": d.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update driver query failed: %w", err)
	}

	ct, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update driver failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxDriverRepository) SetEntryTime(ctx context.Context, id int64, t time.Time) error {
	return r.setTime(ctx, id, "entry_time", t)
}

func (r *pgxDriverRepository) SetExitTime(ctx context.Context, id int64, t time.Time) error {
	return r.setTime(ctx, id, "exit_time", t)
}

func (r *pgxDriverRepository) setTime(ctx context.Context, id int64, column string, t time.Time) error {
	query, args, err := psql.Update("public.drivers").
		Set(column, t).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set %s query failed: %w", column, err)
	}

	ct, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set driver %s failed: %w", column, err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
