package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nextdentist/booking-service/internal/api/handlers"
	getAvailability "github.com/nextdentist/booking-service/internal/usecase/get_availability"
)

const (
	msgInvalidDentistID = "invalid dentist ID"
	msgMissingDate      = "date is required"
	msgInvalidDate      = "invalid date format, expected YYYY-MM-DD"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/dentists/{dentistId}/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем dentistId из URL
	dentistIDStr := vars["dentistId"]
	dentistID, err := strconv.ParseInt(dentistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /dentists/{id}/availability - Invalid dentist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDentistID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /dentists/{id}/availability - Missing date: dentist_id=%d", dentistID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(dentistID, dateStr)
	if err != nil {
		h.logger.Warn("GET /dentists/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /dentists/{id}/availability - Invalid input: dentist_id=%d, error=%v", dentistID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /dentists/{id}/availability - Failed to get availability: dentist_id=%d, error=%v", dentistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /dentists/{id}/availability - Availability retrieved: dentist_id=%d, date=%s, slots_count=%d, default_hours=%t",
		dentistID, dateStr, len(result.Slots), result.UsedDefaultHours)
	handlers.RespondJSON(w, http.StatusOK, response)
}
