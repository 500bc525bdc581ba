package cancel_appointment

import (
	"context"

	"github.com/nextdentist/booking-service/internal/service/appointments/models"
)

type AppointmentService interface {
	Cancel(ctx context.Context, apptID int64, req *models.CancelRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
