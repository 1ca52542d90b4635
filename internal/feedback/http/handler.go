package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/smart-parking-backend/internal/feedback"
	"github.com/nekogravitycat/smart-parking-backend/internal/pkg/response"
)

type Handler struct {
	service feedback.Service
}

func NewHandler(service feedback.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Submit(c *gin.Context) {
	var body SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "all fields are required", err)
		return
	}

	f, err := h.service.Submit(c.Request.Context(), feedback.SubmitRequest{
		FeedbackBy:  body.FeedbackBy,
		Description: body.FeedbackDesc,
		Rate:        body.Rate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Feedback submitted successfully",
		"feedback": NewFeedbackResponse(f),
	})
}

func (h *Handler) List(c *gin.Context) {
	var req ListFeedbackRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	list, total, err := h.service.List(c.Request.Context(), feedback.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]FeedbackResponse, len(list))
	for i, f := range list {
		items[i] = NewFeedbackResponse(f)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}
