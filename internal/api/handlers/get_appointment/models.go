package get_appointment

import "github.com/nextdentist/booking-service/internal/service/appointments/models"

// AppointmentEnvelope HTTP response model
type AppointmentEnvelope struct {
	Success bool                        `json:"success"`
	Data    *models.AppointmentResponse `json:"data"`
}

// FromServiceResponse оборачивает ответ сервиса в конверт API
func FromServiceResponse(resp *models.AppointmentResponse) *AppointmentEnvelope {
	return &AppointmentEnvelope{Success: true, Data: resp}
}
