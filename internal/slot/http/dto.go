package http

import (
	"github.com/nekogravitycat/smart-parking-backend/internal/slot"
)

// SlotResponse is the listing shape of a slot.
type SlotResponse struct {
	ID         int64  `json:"id"`
	SlotNumber string `json:"slot_number"`
	Status     string `json:"status"`
}

func NewSlotResponse(s *slot.Slot) SlotResponse {
	return SlotResponse{
		ID:         s.ID,
		SlotNumber: s.Number,
		Status:     string(s.Status),
	}
}

// SlotPageItem adds the occupant's internal driver id to the listing shape.
type SlotPageItem struct {
	SlotResponse
	DriverID *int64 `json:"driver_id"`
}

// SlotPageResponse mirrors the paginated slot listing.
type SlotPageResponse struct {
	Slots       []SlotPageItem `json:"slots"`
	Total       int            `json:"total"`
	Pages       int            `json:"pages"`
	CurrentPage int            `json:"current_page"`
}

// ListSlotsPageRequest defines query parameters for the paginated listing.
type ListSlotsPageRequest struct {
	Page    int `form:"page" binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1,max=100"`
}

type CreateSlotRequest struct {
	SlotNumber string `json:"slot_number" binding:"required"`
}

type UpdateSlotRequest struct {
	SlotNumber *string `json:"slot_number"`
	Status     *string `json:"status" binding:"omitempty,oneof=free occupied"`
}
