package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/smart-parking-backend/internal/auth"
	"github.com/nekogravitycat/smart-parking-backend/internal/booking"
	"github.com/nekogravitycat/smart-parking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// List returns booking history. Drivers see only their own; admins may ask
// for any user id, including the all-users sentinel.
func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	if !auth.CanActAs(c, req.UserID) {
		response.Error(c, auth.ErrPermissionDenied)
		return
	}

	bookings, err := h.service.ListHistory(c.Request.Context(), req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, items)
}
