package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/smart-parking-backend/internal/pkg/request"
	"github.com/nekogravitycat/smart-parking-backend/internal/pkg/response"
	"github.com/nekogravitycat/smart-parking-backend/internal/slot"
)

type Handler struct {
	service slot.Service
}

func NewHandler(service slot.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	slots, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SlotResponse, len(slots))
	for i, s := range slots {
		items[i] = NewSlotResponse(s)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) ListPage(c *gin.Context) {
	var req ListSlotsPageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PerPage == 0 {
		req.PerPage = 10
	}

	slots, total, err := h.service.ListPage(c.Request.Context(), slot.Filter{Page: req.Page, PageSize: req.PerPage})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SlotPageItem, len(slots))
	for i, s := range slots {
		items[i] = SlotPageItem{SlotResponse: NewSlotResponse(s), DriverID: s.DriverID}
	}

	c.JSON(http.StatusOK, SlotPageResponse{
		Slots:       items,
		Total:       total,
		Pages:       response.TotalPages(total, req.PerPage),
		CurrentPage: req.Page,
	})
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "slot number is required", err)
		return
	}

	s, err := h.service.Add(c.Request.Context(), body.SlotNumber)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Slot added successfully",
		"slot":    NewSlotResponse(s),
	})
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdateSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	req := slot.UpdateRequest{Number: body.SlotNumber}
	if body.Status != nil {
		st := slot.Status(*body.Status)
		req.Status = &st
	}

	s, err := h.service.Edit(c.Request.Context(), uri.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Slot updated successfully",
		"slot":    NewSlotResponse(s),
	})
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Slot deleted successfully")
}
