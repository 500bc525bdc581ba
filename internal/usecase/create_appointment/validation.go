package create_appointment

import (
	"strings"
	"unicode"

	"github.com/nextdentist/booking-service/internal/domain"
)

// validateRequest валидирует запрос на создание записи
// Возвращает *ValidationError со списком всех невалидных полей, а не
// первую ошибку: клиенту нужен полный список для подсветки формы
func validateRequest(req *Request) error {
	fields := make([]FieldError, 0)

	if req.DentistID <= 0 {
		fields = append(fields, FieldError{Field: "dentistId", Message: "must be positive"})
	}

	if req.Date.IsZero() {
		fields = append(fields, FieldError{Field: "appointmentDate", Message: "is required"})
	}

	if req.StartTime.IsZero() {
		fields = append(fields, FieldError{Field: "appointmentTime", Message: "is required"})
	} else if err := req.StartTime.Validate(); err != nil {
		fields = append(fields, FieldError{Field: "appointmentTime", Message: "must be HH:MM"})
	}

	if name := strings.TrimSpace(req.PatientName); name == "" {
		fields = append(fields, FieldError{Field: "patientName", Message: "is required"})
	} else if len(name) > domain.MaxPatientNameLen {
		fields = append(fields, FieldError{Field: "patientName", Message: "is too long"})
	}

	if err := validatePhone(req.PatientPhone); err != "" {
		fields = append(fields, FieldError{Field: "patientPhone", Message: err})
	}

	if req.PatientEmail != nil && !strings.Contains(*req.PatientEmail, "@") {
		fields = append(fields, FieldError{Field: "patientEmail", Message: "is not a valid email"})
	}

	if req.PatientAge != nil && (*req.PatientAge < domain.MinPatientAge || *req.PatientAge > domain.MaxPatientAge) {
		fields = append(fields, FieldError{Field: "patientAge", Message: "is out of range"})
	}

	if req.OtherInfo != nil && len(*req.OtherInfo) > domain.MaxOtherInfoLength {
		fields = append(fields, FieldError{Field: "otherInfo", Message: "is too long"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return nil
}

// validatePhone проверяет телефон пациента
// Пустая строка — отдельное сообщение; иначе минимум domain.MinPhoneLength
// цифр, допускаются разделители и ведущий +
func validatePhone(phone string) string {
	p := strings.TrimSpace(phone)
	if p == "" {
		return "is required"
	}

	digits := 0
	for _, r := range p {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' || r == '-' || r == ' ' || r == '(' || r == ')':
			// разделители допустимы
		default:
			return "contains invalid characters"
		}
	}

	if digits < domain.MinPhoneLength {
		return "is too short"
	}
	if digits > domain.MaxPhoneLength {
		return "is too long"
	}

	return ""
}
