package slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/nekogravitycat/smart-parking-backend/internal/db"
)

const constraintNumberKey = "slots_slot_number_key"

// Repository defines data access methods for slots.
type Repository interface {
	Create(ctx context.Context, s *Slot) error
	GetByID(ctx context.Context, id int64) (*Slot, error)
	List(ctx context.Context) ([]*Slot, error)
	ListPage(ctx context.Context, filter Filter) ([]*Slot, int, error)
	Rename(ctx context.Context, id int64, number string) error
	DeleteIfFree(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[Status]int, error)

	// Occupancy methods, meant to run inside a transaction.
	GetByIDForUpdate(ctx context.Context, id int64) (*Slot, error)
	GetByDriverID(ctx context.Context, driverID int64) (*Slot, error)
	SetOccupant(ctx context.Context, id int64, driverID *int64) error
}

type pgxRepository struct {
	q db.Querier
}

// NewPgxRepository creates a Repository running on a pool or a transaction.
func NewPgxRepository(q db.Querier) Repository {
	return &pgxRepository{q: q}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func selectSlots() squirrel.SelectBuilder {
	return psql.Select("s.id", "s.slot_number", "s.status", "s.driver_id", "d.user_id").
		From("public.slots s").
		LeftJoin("public.drivers d ON s.driver_id = d.id")
}

func scanSlot(row pgx.Row) (*Slot, error) {
	var s Slot
	if err := row.Scan(&s.ID, &s.Number, &s.Status, &s.DriverID, &s.DriverUserID); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *pgxRepository) getOne(ctx context.Context, q squirrel.SelectBuilder) (*Slot, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get slot query failed: %w", err)
	}

	s, err := scanSlot(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get slot failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) Create(ctx context.Context, s *Slot) error {
	query, args, err := psql.Insert("public.slots").
		Columns("slot_number", "status").
		Values(s.Number, StatusFree).
		Suffix("RETURNING id, status").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create slot query failed: %w", err)
	}

	if err := r.q.QueryRow(ctx, query, args...).Scan(&s.ID, &s.Status); err != nil {
		if db.IsUniqueViolation(err, constraintNumberKey) {
			return ErrNumberTaken
		}
		return fmt.Errorf("create slot failed: %w", err)
	}
	s.DriverID = nil
	s.DriverUserID = nil
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Slot, error) {
	return r.getOne(ctx, selectSlots().Where(squirrel.Eq{"s.id": id}))
}

func (r *pgxRepository) GetByIDForUpdate(ctx context.Context, id int64) (*Slot, error) {
	return r.getOne(ctx, selectSlots().Where(squirrel.Eq{"s.id": id}).Suffix("FOR UPDATE OF s"))
}

func (r *pgxRepository) GetByDriverID(ctx context.Context, driverID int64) (*Slot, error) {
	return r.getOne(ctx, selectSlots().Where(squirrel.Eq{"s.driver_id": driverID}))
}

func (r *pgxRepository) List(ctx context.Context) ([]*Slot, error) {
	query, args, err := selectSlots().OrderBy("s.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list slots query failed: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slots failed: %w", err)
	}
	defer rows.Close()

	var result []*Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot failed: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list slots failed: %w", err)
	}
	return result, nil
}

func (r *pgxRepository) ListPage(ctx context.Context, filter Filter) ([]*Slot, int, error) {
	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}
	offset := (filter.Page - 1) * filter.PageSize

	query, args, err := psql.Select("s.id", "s.slot_number", "s.status", "s.driver_id", "d.user_id", "count(*) OVER() AS total_count").
		From("public.slots s").
		LeftJoin("public.drivers d ON s.driver_id = d.id").
		OrderBy("s.id ASC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list slots page query failed: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list slots page failed: %w", err)
	}
	defer rows.Close()

	var result []*Slot
	var total int
	for rows.Next() {
		var s Slot
		if err := rows.Scan(&s.ID, &s.Number, &s.Status, &s.DriverID, &s.DriverUserID, &total); err != nil {
			return nil, 0, fmt.Errorf("scan slot failed: %w", err)
		}
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list slots page failed: %w", err)
	}

	// A page past the end has no rows to carry the window count.
	if len(result) == 0 && filter.Page > 1 {
		if err := r.q.QueryRow(ctx, "SELECT count(*) FROM public.slots").Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count slots failed: %w", err)
		}
	}

	return result, total, nil
}

func (r *pgxRepository) Rename(ctx context.Context, id int64, number string) error {
	query, args, err := psql.Update("public.slots").
		Set("slot_number", number).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update slot query failed: %w", err)
	}

	ct, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		if db.IsUniqueViolation(err, constraintNumberKey) {
			return ErrNumberTaken
		}
		return fmt.Errorf("update slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetOccupant(ctx context.Context, id int64, driverID *int64) error {
	status := StatusFree
	if driverID != nil {
		status = StatusOccupied
	}

	query, args, err := psql.Update("public.slots").
		Set("status", status).
		Set("driver_id", driverID).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set occupant query failed: %w", err)
	}

	ct, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set slot occupant failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) DeleteIfFree(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("public.slots").
		Where(squirrel.Eq{"id": id, "status": StatusFree}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete slot query failed: %w", err)
	}

	ct, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete slot failed: %w", err)
	}
	if ct.RowsAffected() > 0 {
		return nil
	}

	// Nothing deleted: either missing or occupied.
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrOccupied
}

func (r *pgxRepository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	query, args, err := psql.Select("status", "count(*)").
		From("public.slots").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count slots query failed: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count slots failed: %w", err)
	}
	defer rows.Close()

	counts := map[Status]int{StatusFree: 0, StatusOccupied: 0}
	for rows.Next() {
		var st Status
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, fmt.Errorf("scan slot count failed: %w", err)
		}
		counts[st] = n
	}
	return counts, rows.Err()
}
