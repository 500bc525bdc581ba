package get_availability

import (
	"context"
	"time"

	"github.com/nextdentist/booking-service/internal/domain"
)

// DentistRepository интерфейс репозитория врачей
type DentistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Dentist, error)
}

// AppointmentRepository интерфейс репозитория записей на приём
type AppointmentRepository interface {
	// GetByDentistAndDate получает записи врача на конкретную дату
	GetByDentistAndDate(ctx context.Context, dentistID int64, date time.Time, includeInactive bool) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
