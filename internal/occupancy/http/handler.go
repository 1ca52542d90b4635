package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/smart-parking-backend/internal/auth"
	"github.com/nekogravitycat/smart-parking-backend/internal/occupancy"
	"github.com/nekogravitycat/smart-parking-backend/internal/pkg/request"
	"github.com/nekogravitycat/smart-parking-backend/internal/pkg/response"
)

type Handler struct {
	service occupancy.Service
}

func NewHandler(service occupancy.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	occ, err := h.service.GetOccupancy(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewOccupancyResponse(occ))
}

func (h *Handler) Book(c *gin.Context) {
	var uri SlotDriverRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}
	if !auth.CanActAs(c, uri.UserID) {
		response.Error(c, auth.ErrPermissionDenied)
		return
	}

	entry, err := h.service.BookSlot(c.Request.Context(), uri.SlotID, uri.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, BookResponse{
		Message:   "Slot booked successfully",
		EntryTime: entry,
	})
}

// Cancel frees a slot. Admins may cancel any slot; drivers only their own.
func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var err error
	if auth.IsAdmin(c) {
		err = h.service.CancelSlot(c.Request.Context(), uri.ID)
	} else {
		userID, _ := auth.GetUserID(c)
		err = h.service.CancelSlotHeldBy(c.Request.Context(), uri.ID, userID)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Booking cancelled successfully")
}

func (h *Handler) Exit(c *gin.Context) {
	var uri SlotDriverRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}
	if !auth.CanActAs(c, uri.UserID) {
		response.Error(c, auth.ErrPermissionDenied)
		return
	}

	if err := h.service.ExitSlot(c.Request.Context(), uri.SlotID, uri.UserID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Exit recorded successfully")
}

func (h *Handler) GetByDriver(c *gin.Context) {
	var uri request.ByUserIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}
	if !auth.CanActAs(c, uri.UserID) {
		response.Error(c, auth.ErrPermissionDenied)
		return
	}

	occ, err := h.service.GetOccupancyByDriver(c.Request.Context(), uri.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewDriverOccupancyResponse(occ))
}
