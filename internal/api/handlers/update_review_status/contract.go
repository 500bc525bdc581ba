package update_review_status

import (
	"context"

	"github.com/nextdentist/booking-service/internal/service/reviews/models"
)

type ReviewService interface {
	SetStatus(ctx context.Context, reviewID int64, status string) (*models.ReviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
