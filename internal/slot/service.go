package slot

import (
	"context"
	"strings"
)

type UpdateRequest struct {
	Number *string
	Status *Status
}

// Service covers administrative slot management and read projections.
// Occupancy transitions live in the occupancy package.
type Service interface {
	Add(ctx context.Context, number string) (*Slot, error)
	GetByID(ctx context.Context, id int64) (*Slot, error)
	List(ctx context.Context) ([]*Slot, error)
	ListPage(ctx context.Context, filter Filter) ([]*Slot, int, error)
	Edit(ctx context.Context, id int64, req UpdateRequest) (*Slot, error)
	Delete(ctx context.Context, id int64) error
}

// Releaser frees an occupied slot through the occupancy engine.
type Releaser interface {
	CancelSlot(ctx context.Context, slotID int64) error
}

type service struct {
	repo     Repository
	releaser Releaser
}

func NewService(repo Repository, releaser Releaser) Service {
	return &service{repo: repo, releaser: releaser}
}

func (s *service) Add(ctx context.Context, number string) (*Slot, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, ErrNumberRequired
	}

	sl := &Slot{Number: number}
	if err := s.repo.Create(ctx, sl); err != nil {
		return nil, err
	}
	return sl, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Slot, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Slot, error) {
	return s.repo.List(ctx)
}

func (s *service) ListPage(ctx context.Context, filter Filter) ([]*Slot, int, error) {
	return s.repo.ListPage(ctx, filter)
}

// Edit renames a slot and optionally frees it. Freeing goes through the
// Releaser, so it is exactly a cancel: the row is locked, the occupant is
// detached and no history is written.
func (s *service) Edit(ctx context.Context, id int64, req UpdateRequest) (*Slot, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	number := current.Number
	if req.Number != nil {
		number = strings.TrimSpace(*req.Number)
		if number == "" {
			return nil, ErrNumberRequired
		}
	}

	release := false
	if req.Status != nil {
		switch {
		case !req.Status.Valid():
			return nil, ErrInvalidStatus
		case *req.Status == StatusOccupied && current.IsFree():
			return nil, ErrOccupyViaEdit
		case *req.Status == StatusFree:
			release = true
		}
	}

	if number != current.Number {
		if err := s.repo.Rename(ctx, id, number); err != nil {
			return nil, err
		}
	}
	if release && !current.IsFree() {
		if err := s.releaser.CancelSlot(ctx, id); err != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteIfFree(ctx, id)
}
