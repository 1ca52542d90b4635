package http

import (
	"time"

	"github.com/nekogravitycat/smart-parking-backend/internal/booking"
)

// ListBookingsRequest defines query parameters for booking history.
type ListBookingsRequest struct {
	UserID int64 `form:"user_id" binding:"required,min=1"`
}

type BookingResponse struct {
	SlotNumber  string    `json:"slot_number"`
	UserID      int64     `json:"user_id"`
	OwnerName   string    `json:"owner_name"`
	VehicleName string    `json:"vehicle_name"`
	EntryTime   time.Time `json:"entry_time"`
	ExitTime    time.Time `json:"exit_time"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		SlotNumber:  b.SlotNumber,
		UserID:      b.UserID,
		OwnerName:   b.OwnerName,
		VehicleName: b.VehicleName,
		EntryTime:   b.EntryTime,
		ExitTime:    b.ExitTime,
	}
}
