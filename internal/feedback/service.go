package feedback

import (
	"context"
	"strings"
)

type SubmitRequest struct {
	FeedbackBy  string
	Description string
	Rate        int
}

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*Feedback, error)
	List(ctx context.Context, filter Filter) ([]*Feedback, int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*Feedback, error) {
	by := strings.TrimSpace(req.FeedbackBy)
	desc := strings.TrimSpace(req.Description)
	if by == "" || desc == "" {
		return nil, ErrFieldsRequired
	}
	if req.Rate < MinRate || req.Rate > MaxRate {
		return nil, ErrInvalidRate
	}

	f := &Feedback{
		FeedbackBy:  by,
		Description: desc,
		Rate:        req.Rate,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Feedback, int, error) {
	return s.repo.List(ctx, filter)
}
