package appointments

import (
	"context"

	"github.com/nextdentist/booking-service/internal/domain"
	apptRepo "github.com/nextdentist/booking-service/internal/infra/storage/appointment"
)

// AppointmentRepository интерфейс репозитория записей на приём
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByCode(ctx context.Context, code string) (*domain.Appointment, error)
	ListByDentist(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, upd apptRepo.StatusUpdate) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
