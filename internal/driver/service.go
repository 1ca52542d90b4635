package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nekogravitycat/smart-parking-backend/internal/auth"
	"github.com/nekogravitycat/smart-parking-backend/internal/booking"
)

type RegisterRequest struct {
	UserID      int64
	OwnerName   string
	VehicleName string
	BankNumber  string
	Password    string
}

// ProfilePatch carries optional profile changes. A nil field is left untouched.
type ProfilePatch struct {
	OwnerName   *string
	VehicleName *string
	BankNumber  *string
	OldPassword *string
	NewPassword *string
}

// Service defines business logic related to drivers.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Driver, error)
	Authenticate(ctx context.Context, userID int64, password string) (*Driver, error)
	UpdateProfile(ctx context.Context, userID int64, patch ProfilePatch) (*Driver, error)
	GetByUserID(ctx context.Context, userID int64) (*Driver, error)
	List(ctx context.Context) ([]*Driver, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
}

// NewService creates a new driver Service.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:   repo,
		hasher: hasher,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Driver, error) {
	ownerName := strings.TrimSpace(req.OwnerName)
	vehicleName := strings.TrimSpace(req.VehicleName)
	bankNumber := strings.TrimSpace(req.BankNumber)

	if req.UserID <= 0 || ownerName == "" || vehicleName == "" || bankNumber == "" || req.Password == "" {
		return nil, ErrFieldsRequired
	}
	if req.UserID == booking.AllUsers {
		return nil, ErrReservedUserID
	}

	// Check if the user id is already used.
	_, err := s.repo.GetByUserID(ctx, req.UserID)
	if err == nil {
		return nil, ErrUserIDTaken
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user id: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	d := &Driver{
		UserID:       req.UserID,
		OwnerName:    ownerName,
		VehicleName:  vehicleName,
		BankNumber:   bankNumber,
		PasswordHash: hash,
		Role:         auth.RoleUser,
	}

	// The unique constraint still guards against a concurrent registration.
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

// Authenticate never tells apart an unknown user id from a wrong password.
func (s *service) Authenticate(ctx context.Context, userID int64, password string) (*Driver, error) {
	if userID <= 0 || password == "" {
		return nil, ErrLoginFailed
	}

	d, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrLoginFailed
		}
		return nil, fmt.Errorf("failed to fetch driver: %w", err)
	}

	if err := s.hasher.Compare(d.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrLoginFailed
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	return d, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, patch ProfilePatch) (*Driver, error) {
	d, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// The old password is verified before anything changes.
	oldVerified := false
	if patch.OldPassword != nil && *patch.OldPassword != "" {
		if err := s.hasher.Compare(d.PasswordHash, *patch.OldPassword); err != nil {
			if errors.Is(err, auth.ErrPasswordMismatch) {
				return nil, ErrIncorrectPassword
			}
			return nil, fmt.Errorf("failed to verify password: %w", err)
		}
		oldVerified = true
	}

	for _, f := range []struct {
		val *string
		dst *string
	}{
		{patch.OwnerName, &d.OwnerName},
		{patch.VehicleName, &d.VehicleName},
		{patch.BankNumber, &d.BankNumber},
	} {
		if f.val == nil {
			continue
		}
		v := strings.TrimSpace(*f.val)
		if v == "" {
			return nil, ErrEmptyField
		}
		*f.dst = v
	}

	if patch.NewPassword != nil && *patch.NewPassword != "" {
		if !oldVerified {
			return nil, ErrOldPasswordRequired
		}
		hash, err := s.hasher.Hash(*patch.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		d.PasswordHash = hash
	}

	if err := s.repo.UpdateProfile(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) GetByUserID(ctx context.Context, userID int64) (*Driver, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) List(ctx context.Context) ([]*Driver, error) {
	return s.repo.List(ctx)
}
