package feedback

import (
	"time"

	"github.com/nekogravitycat/smart-parking-backend/internal/pkg/apperror"
)

const (
	MinRate = 1
	MaxRate = 5
)

var (
	ErrFieldsRequired = apperror.InvalidInput("all fields are required")
	ErrInvalidRate    = apperror.InvalidInput("rate must be between 1 and 5")
)

type Feedback struct {
	ID          int64
	FeedbackBy  string
	Description string
	Rate        int
	CreatedAt   time.Time
}

type Filter struct {
	Page     int
	PageSize int
}
