package feedback

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/nekogravitycat/smart-parking-backend/internal/db"
)

type Repository interface {
	Create(ctx context.Context, f *Feedback) error
	List(ctx context.Context, filter Filter) ([]*Feedback, int, error)
}

type pgxRepository struct {
	q db.Querier
}

func NewPgxRepository(q db.Querier) Repository {
	return &pgxRepository{q: q}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxRepository) Create(ctx context.Context, f *Feedback) error {
	query, args, err := psql.Insert("public.feedbacks").
		Columns("feedback_by", "feedback_desc", "rate").
		Values(f.FeedbackBy, f.Description, f.Rate).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create feedback query failed: %w", err)
	}

	if err := r.q.QueryRow(ctx, query, args...).Scan(&f.ID, &f.CreatedAt); err != nil {
		return fmt.Errorf("create feedback failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Feedback, int, error) {
	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	sql, args, err := psql.Select("id", "feedback_by", "feedback_desc", "rate", "created_at", "count(*) OVER() as total_count").
		From("public.feedbacks").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list feedback query failed: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list feedback failed: %w", err)
	}
	defer rows.Close()

	var result []*Feedback
	var total int

	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.FeedbackBy, &f.Description, &f.Rate, &f.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan feedback failed: %w", err)
		}
		result = append(result, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list feedback failed: %w", err)
	}

	return result, total, nil
}
