package validate_aggregates

import (
	"context"

	"github.com/nextdentist/booking-service/internal/service/reviews/models"
)

type ReviewService interface {
	ValidateAggregates(ctx context.Context, dentistID int64) (*models.DriftReport, error)
	Recompute(ctx context.Context, dentistID int64) *models.AggregateResult
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
