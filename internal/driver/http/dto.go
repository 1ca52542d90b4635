package http

import (
	"time"

	"github.com/nekogravitycat/smart-parking-backend/internal/driver"
)

// RegisterRequest defines the payload for driver registration.
// Field presence is checked by the service so every missing field yields the same error.
type RegisterRequest struct {
	UserID      int64  `json:"user_id"`
	OwnerName   string `json:"owner_name"`
	VehicleName string `json:"vehicle_name"`
	BankNumber  string `json:"bank_number"`
	Password    string `json:"password"`
}

// LoginRequest defines the payload for driver login.
type LoginRequest struct {
	UserID   int64  `json:"user_id"`
	Password string `json:"password"`
}

// UpdateProfileRequest uses pointers to distinguish "not sent" from "sent empty".
type UpdateProfileRequest struct {
	OwnerName   *string `json:"owner_name"`
	VehicleName *string `json:"vehicle_name"`
	BankNumber  *string `json:"bank_number"`
	OldPassword *string `json:"old_password"`
	NewPassword *string `json:"new_password"`
}

// ProfileResponse is the driver's own view of their account.
type ProfileResponse struct {
	UserID      int64   `json:"user_id"`
	OwnerName   string  `json:"owner_name"`
	VehicleName string  `json:"vehicle_name"`
	BankNumber  string  `json:"bank_number"`
	Role        string  `json:"role"`
	Slot        *string `json:"slot"`
}

func NewProfileResponse(d *driver.Driver) ProfileResponse {
	return ProfileResponse{
		UserID:      d.UserID,
		OwnerName:   d.OwnerName,
		VehicleName: d.VehicleName,
		BankNumber:  d.BankNumber,
		Role:        d.Role,
		Slot:        d.SlotNumber(),
	}
}

// LoginResponse returns the token and driver info.
type LoginResponse struct {
	Message     string          `json:"message"`
	AccessToken string          `json:"access_token"`
	User        ProfileResponse `json:"user"`
}

// DriverResponse is the administrative listing shape.
type DriverResponse struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	OwnerName   string     `json:"owner_name"`
	VehicleName string     `json:"vehicle_name"`
	BankNumber  string     `json:"bank_number"`
	EntryTime   *time.Time `json:"entry_time"`
	ExitTime    *time.Time `json:"exit_time"`
	CreatedAt   time.Time  `json:"created_at"`
	SlotID      *int64     `json:"slot_id"`
	SlotNumber  *string    `json:"slot_number"`
	SlotStatus  *string    `json:"slot_status"`
}

func NewDriverResponse(d *driver.Driver) DriverResponse {
	resp := DriverResponse{
		ID:          d.ID,
		UserID:      d.UserID,
		OwnerName:   d.OwnerName,
		VehicleName: d.VehicleName,
		BankNumber:  d.BankNumber,
		EntryTime:   d.EntryTime,
		ExitTime:    d.ExitTime,
		CreatedAt:   d.CreatedAt,
	}
	if d.Slot != nil {
		id, number, status := d.Slot.ID, d.Slot.Number, d.Slot.Status
		resp.SlotID = &id
		resp.SlotNumber = &number
		resp.SlotStatus = &status
	}
	return resp
}
