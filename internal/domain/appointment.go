package domain

import (
	"fmt"
	"time"

	"github.com/nextdentist/booking-service/pkg/types"
)

// AppointmentStatus represents the status of an appointment
// Одно и то же перечисление используется для общего статуса и для
// независимых статусов со стороны врача и пациента
type AppointmentStatus string

const (
	StatusPending            AppointmentStatus = "PENDING"
	StatusApproved           AppointmentStatus = "APPROVED"
	StatusRejected           AppointmentStatus = "REJECTED"
	StatusCancelledByPatient AppointmentStatus = "CANCELLED_BY_PATIENT"
	StatusCancelledByDentist AppointmentStatus = "CANCELLED_BY_DENTIST"
	StatusRescheduled        AppointmentStatus = "RESCHEDULED"
	StatusCompleted          AppointmentStatus = "COMPLETED"
	StatusNoShow             AppointmentStatus = "NO_SHOW"
)

// Actor кто последним изменил запись
type Actor string

const (
	ActorAdmin   Actor = "admin"
	ActorDentist Actor = "dentist"
	ActorPatient Actor = "patient"
)

// Appointment represents a patient's booking with a dentist
type Appointment struct {
	ID        int64
	Code      string // публичный UUID-код записи
	DentistID int64
	UserID    *int64 // ссылка на пациента-пользователя, nil для гостевых записей

	PatientName  string
	PatientPhone string
	PatientEmail *string
	PatientAge   *int
	Gender       *string

	TreatmentID   *int64
	TreatmentName *string
	OtherInfo     *string

	AppointmentDate time.Time        // календарный день, полночь UTC
	AppointmentTime types.TimeString // "HH:MM", хранится отдельно от даты

	Status         AppointmentStatus
	DentistStatus  AppointmentStatus
	PatientStatus  AppointmentStatus
	StatusReason   *string
	LastModifiedBy *Actor

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies its slot
func (a *Appointment) IsActive() bool {
	for _, s := range InactiveStatuses {
		if a.Status == s {
			return false
		}
	}
	return true
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusApproved || a.Status == StatusRescheduled
}

// IsCancelled returns true if the appointment has been cancelled by either side
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByPatient || a.Status == StatusCancelledByDentist
}

// IsValidAppointmentStatus проверяет, что строка — допустимый статус записи
func IsValidAppointmentStatus(s string) bool {
	switch AppointmentStatus(s) {
	case StatusPending, StatusApproved, StatusRejected,
		StatusCancelledByPatient, StatusCancelledByDentist,
		StatusRescheduled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// ParseDate парсит дату строго в формате YYYY-MM-DD
// time.Parse принимает и незападдированные компоненты ("2025-6-1"),
// поэтому длина проверяется отдельно
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateFormat) {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return time.Parse(DateFormat, s)
}

// AppointmentsFilter фильтр для выборки записей врача
type AppointmentsFilter struct {
	DentistID       int64              // Обязательный параметр
	Date            *time.Time         // Конкретная дата (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые/отклонённые записи
}
