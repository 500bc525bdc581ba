package reviews

import (
	"context"

	"github.com/nextdentist/booking-service/internal/domain"
)

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ListApprovedByDentist(ctx context.Context, dentistID int64) ([]*domain.Review, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReviewStatus) error
	Delete(ctx context.Context, id int64) error
}

// DentistRepository интерфейс для работы с агрегатами врача
type DentistRepository interface {
	UpdateAggregates(ctx context.Context, dentistID int64, rating float64, totalReviews int) error
	GetAggregates(ctx context.Context, dentistID int64) (rating float64, totalReviews int, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
