package get_dentist_appointments

import (
	"context"

	"github.com/nextdentist/booking-service/internal/service/appointments/models"
)

type AppointmentService interface {
	ListByDentist(ctx context.Context, req *models.ListByDentistRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
