package models

import (
	"time"

	"github.com/nextdentist/booking-service/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на изменение статуса записи
// Actor определяет, какой статусный трек меняется вместе с общим статусом
type UpdateStatusRequest struct {
	Actor  domain.Actor `json:"actor"`
	Status string       `json:"status"`
	Reason *string      `json:"reason,omitempty"`
}

// CancelRequest запрос на отмену записи
type CancelRequest struct {
	Actor  domain.Actor `json:"actor"`
	Reason *string      `json:"reason,omitempty"`
}

// ListByDentistRequest запрос на получение записей врача
type ListByDentistRequest struct {
	DentistID       int64
	Date            *time.Time
	Status          *string
	IncludeInactive bool
}

// Response модели

// AppointmentResponse представление записи для API
type AppointmentResponse struct {
	ID        int64  `json:"id"`
	Code      string `json:"code"`
	DentistID int64  `json:"dentistId"`
	UserID    *int64 `json:"userId,omitempty"`

	PatientName  string  `json:"patientName"`
	PatientPhone string  `json:"patientPhone"`
	PatientEmail *string `json:"patientEmail,omitempty"`
	PatientAge   *int    `json:"patientAge,omitempty"`
	Gender       *string `json:"gender,omitempty"`

	TreatmentID   *int64  `json:"treatmentId,omitempty"`
	TreatmentName *string `json:"treatmentName,omitempty"`
	OtherInfo     *string `json:"otherInfo,omitempty"`

	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`

	Status         string  `json:"status"`
	DentistStatus  string  `json:"dentistStatus"`
	PatientStatus  string  `json:"patientStatus"`
	StatusReason   *string `json:"statusReason,omitempty"`
	LastModifiedBy *string `json:"lastModifiedBy,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// FromDomainAppointment конвертирует domain.Appointment в API представление
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:        a.ID,
		Code:      a.Code,
		DentistID: a.DentistID,
		UserID:    a.UserID,

		PatientName:  a.PatientName,
		PatientPhone: a.PatientPhone,
		PatientEmail: a.PatientEmail,
		PatientAge:   a.PatientAge,
		Gender:       a.Gender,

		TreatmentID:   a.TreatmentID,
		TreatmentName: a.TreatmentName,
		OtherInfo:     a.OtherInfo,

		AppointmentDate: a.AppointmentDate.Format(domain.DateFormat),
		AppointmentTime: a.AppointmentTime.String(),

		Status:        string(a.Status),
		DentistStatus: string(a.DentistStatus),
		PatientStatus: string(a.PatientStatus),
		StatusReason:  a.StatusReason,

		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}

	if a.LastModifiedBy != nil {
		actor := string(*a.LastModifiedBy)
		resp.LastModifiedBy = &actor
	}

	return resp
}

// FromDomainAppointmentList конвертирует список записей
func FromDomainAppointmentList(appts []*domain.Appointment) *AppointmentListResponse {
	list := make([]*AppointmentResponse, len(appts))
	for i, a := range appts {
		list[i] = FromDomainAppointment(a)
	}
	return &AppointmentListResponse{Appointments: list, Total: len(list)}
}
