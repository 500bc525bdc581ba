package create_appointment

import (
	"time"

	"github.com/nextdentist/booking-service/internal/domain"
	createAppointment "github.com/nextdentist/booking-service/internal/usecase/create_appointment"
	"github.com/nextdentist/booking-service/pkg/types"
)

// CreateAppointmentRequest HTTP request model
// Поля Date/Time/Message — legacy алиасы appointmentDate/appointmentTime/otherInfo,
// старые клиенты всё ещё шлют их
type CreateAppointmentRequest struct {
	DentistID int64  `json:"dentistId"`
	UserID    *int64 `json:"userId,omitempty"`

	AppointmentDate string `json:"appointmentDate"` // "2025-10-15"
	AppointmentTime string `json:"appointmentTime"` // "10:00"
	Date            string `json:"date,omitempty"`
	Time            string `json:"time,omitempty"`

	PatientName  string  `json:"patientName"`
	PatientPhone string  `json:"patientPhone"`
	PatientEmail *string `json:"patientEmail,omitempty"`
	PatientAge   *int    `json:"patientAge,omitempty"`
	Gender       *string `json:"gender,omitempty"`

	TreatmentID   *int64  `json:"treatmentId,omitempty"`
	TreatmentName *string `json:"treatmentName,omitempty"`
	OtherInfo     *string `json:"otherInfo,omitempty"`
	Message       *string `json:"message,omitempty"`
}

// AppointmentCreatedResponse HTTP response model
type AppointmentCreatedResponse struct {
	Success     bool                `json:"success"`
	Appointment *AppointmentPayload `json:"appointment"`
}

// AppointmentPayload созданная запись
type AppointmentPayload struct {
	ID              int64   `json:"id"`
	Code            string  `json:"code"`
	DentistID       int64   `json:"dentistId"`
	UserID          *int64  `json:"userId,omitempty"`
	AppointmentDate string  `json:"appointmentDate"`
	AppointmentTime string  `json:"appointmentTime"`
	Status          string  `json:"status"`
	PatientName     string  `json:"patientName"`
	PatientPhone    string  `json:"patientPhone"`
	TreatmentName   *string `json:"treatmentName,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	// Сводим legacy алиасы к основным полям
	dateStr := r.AppointmentDate
	if dateStr == "" {
		dateStr = r.Date
	}

	timeStr := r.AppointmentTime
	if timeStr == "" {
		timeStr = r.Time
	}

	otherInfo := r.OtherInfo
	if otherInfo == nil {
		otherInfo = r.Message
	}

	// Парсим дату
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		DentistID: r.DentistID,
		UserID:    r.UserID,
		Date:      date,
		StartTime: startTime,

		PatientName:  r.PatientName,
		PatientPhone: r.PatientPhone,
		PatientEmail: r.PatientEmail,
		PatientAge:   r.PatientAge,
		Gender:       r.Gender,

		TreatmentID:   r.TreatmentID,
		TreatmentName: r.TreatmentName,
		OtherInfo:     otherInfo,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentCreatedResponse {
	return &AppointmentCreatedResponse{
		Success: true,
		Appointment: &AppointmentPayload{
			ID:              resp.ID,
			Code:            resp.Code,
			DentistID:       resp.DentistID,
			UserID:          resp.UserID,
			AppointmentDate: resp.Date.Format(domain.DateFormat),
			AppointmentTime: resp.StartTime.String(),
			Status:          resp.Status,
			PatientName:     resp.PatientName,
			PatientPhone:    resp.PatientPhone,
			TreatmentName:   resp.TreatmentName,
			CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		},
	}
}
