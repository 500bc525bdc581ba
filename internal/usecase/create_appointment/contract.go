package create_appointment

import (
	"context"
	"time"

	"github.com/nextdentist/booking-service/internal/domain"
	"github.com/nextdentist/booking-service/internal/integrations/notify"
)

// AppointmentRepository интерфейс репозитория записей на приём
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByDentistAndDate(ctx context.Context, dentistID int64, date time.Time, includeInactive bool) ([]*domain.Appointment, error)
}

// DentistRepository интерфейс репозитория врачей
type DentistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Dentist, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс отправки подтверждения записи (best-effort)
type Notifier interface {
	SendAppointmentConfirmation(conf notify.AppointmentConfirmation) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
