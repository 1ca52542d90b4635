package http

import (
	"time"

	"github.com/nekogravitycat/smart-parking-backend/internal/occupancy"
)

// SlotDriverRequest binds /slots/:id/<action>/:user_id.
type SlotDriverRequest struct {
	SlotID int64 `uri:"id" binding:"required,min=1"`
	UserID int64 `uri:"user_id" binding:"required,min=1"`
}

type BookResponse struct {
	Message   string    `json:"message"`
	EntryTime time.Time `json:"entry_time"`
}

type OccupancyResponse struct {
	ID           int64  `json:"id"`
	SlotNumber   string `json:"slot_number"`
	Status       string `json:"status"`
	DriverUserID *int64 `json:"driver_user_id,omitempty"`
}

func NewOccupancyResponse(o *occupancy.Occupancy) OccupancyResponse {
	return OccupancyResponse{
		ID:           o.SlotID,
		SlotNumber:   o.Number,
		Status:       string(o.Status),
		DriverUserID: o.DriverUserID,
	}
}

type DriverOccupancyResponse struct {
	SlotID     int64      `json:"slot_id"`
	SlotNumber string     `json:"slot_number"`
	Status     string     `json:"status"`
	BookedAt   *time.Time `json:"booked_at"`
}

func NewDriverOccupancyResponse(o *occupancy.DriverOccupancy) DriverOccupancyResponse {
	return DriverOccupancyResponse{
		SlotID:     o.SlotID,
		SlotNumber: o.Number,
		Status:     string(o.Status),
		BookedAt:   o.BookedAt,
	}
}
