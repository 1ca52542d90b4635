package booking

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/nekogravitycat/smart-parking-backend/internal/db"
)

// Repository is append-only: bookings are never updated or deleted.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	List(ctx context.Context, filter Filter) ([]*Booking, error)
}

type pgxRepository struct {
	q db.Querier
}

func NewPgxRepository(q db.Querier) Repository {
	return &pgxRepository{q: q}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	query, args, err := psql.Insert("public.bookings").
		Columns("slot_number", "user_id", "owner_name", "vehicle_name", "entry_time", "exit_time").
		Values(b.SlotNumber, b.UserID, b.OwnerName, b.VehicleName, b.EntryTime, b.ExitTime).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.q.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	query := psql.Select(
		"id", "slot_number", "user_id", "owner_name", "vehicle_name",
		"entry_time", "exit_time", "created_at",
	).
		From("public.bookings").
		OrderBy("exit_time DESC", "id DESC")

	if filter.UserID != AllUsers {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.SlotNumber, &b.UserID, &b.OwnerName, &b.VehicleName,
			&b.EntryTime, &b.ExitTime, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}

	return bookings, nil
}
