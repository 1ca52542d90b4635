package booking

import (
	"context"
)

type Service interface {
	// ListHistory returns a driver's completed sessions, or everyone's for AllUsers.
	ListHistory(ctx context.Context, userID int64) ([]*Booking, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListHistory(ctx context.Context, userID int64) ([]*Booking, error) {
	return s.repo.List(ctx, Filter{UserID: userID})
}
