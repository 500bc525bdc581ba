package create_appointment

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDentistNotFound возвращается, когда врач не найден
	ErrDentistNotFound = errors.New("create_appointment: dentist not found")

	// ErrSlotTaken возвращается, когда слот уже занят активной записью
	ErrSlotTaken = errors.New("create_appointment: slot already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

// FieldError ошибка валидации одного поля
type FieldError struct {
	Field   string
	Message string
}

// ValidationError пополевая ошибка валидации запроса
// Разворачивается в ErrInvalidInput для errors.Is на границе
type ValidationError struct {
	Fields []FieldError
}

// Error реализует error
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return fmt.Sprintf("create_appointment: validation failed: %s", strings.Join(parts, "; "))
}

// Unwrap позволяет errors.Is(err, ErrInvalidInput)
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
