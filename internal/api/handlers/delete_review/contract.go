package delete_review

import (
	"context"

	"github.com/nextdentist/booking-service/internal/service/reviews/models"
)

type ReviewService interface {
	Delete(ctx context.Context, reviewID int64) (*models.DeleteResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
