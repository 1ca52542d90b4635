package http

import (
	"time"

	"github.com/nekogravitycat/smart-parking-backend/internal/feedback"
	"github.com/nekogravitycat/smart-parking-backend/internal/pkg/request"
)

type SubmitFeedbackRequest struct {
	FeedbackBy   string `json:"feedback_by" binding:"required"`
	FeedbackDesc string `json:"feedback_desc" binding:"required"`
	Rate         int    `json:"rate" binding:"required"`
}

type ListFeedbackRequest struct {
	request.ListParams
}

type FeedbackResponse struct {
	ID           int64     `json:"id"`
	FeedbackBy   string    `json:"feedback_by"`
	FeedbackDesc string    `json:"feedback_desc"`
	Rate         int       `json:"rate"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewFeedbackResponse(f *feedback.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:           f.ID,
		FeedbackBy:   f.FeedbackBy,
		FeedbackDesc: f.Description,
		Rate:         f.Rate,
		CreatedAt:    f.CreatedAt,
	}
}
