package create_appointment

import (
	"errors"
	"net/http"

	"github.com/nextdentist/booking-service/internal/api/handlers"
	createAppointment "github.com/nextdentist/booking-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid appointment date, expected YYYY-MM-DD"
	msgValidationFailed   = "validation failed"
	msgDentistNotFound    = "dentist not found"
	msgSlotTaken          = "the selected time slot is no longer available"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var validationErr *createAppointment.ValidationError

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /appointments - Validation failed: dentist_id=%d, fields=%d",
				req.DentistID, len(validationErr.Fields))
			details := make([]handlers.FieldError, len(validationErr.Fields))
			for i, f := range validationErr.Fields {
				details[i] = handlers.FieldError{Field: f.Field, Message: f.Message}
			}
			handlers.RespondValidationError(w, msgValidationFailed, details)

		case errors.Is(err, createAppointment.ErrDentistNotFound):
			h.logger.Warn("POST /appointments - Dentist not found: dentist_id=%d", req.DentistID)
			handlers.RespondNotFound(w, msgDentistNotFound)

		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: dentist_id=%d, date=%s, time=%s",
				req.DentistID, useCaseReq.Date.Format("2006-01-02"), useCaseReq.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: dentist_id=%d, error=%v", req.DentistID, err)
			handlers.RespondBadRequest(w, msgValidationFailed)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: dentist_id=%d, error=%v",
				req.DentistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, code=%s, dentist_id=%d",
		result.ID, result.Code, req.DentistID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
