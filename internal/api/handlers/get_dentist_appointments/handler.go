package get_dentist_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nextdentist/booking-service/internal/api/handlers"
	"github.com/nextdentist/booking-service/internal/domain"
	"github.com/nextdentist/booking-service/internal/service/appointments"
	"github.com/nextdentist/booking-service/internal/service/appointments/models"
)

const (
	msgInvalidDentistID = "invalid dentist ID"
	msgInvalidDate      = "invalid date format, expected YYYY-MM-DD"
	msgInvalidStatus    = "invalid appointment status"
)

// ListEnvelope HTTP response model
type ListEnvelope struct {
	Success bool                            `json:"success"`
	Data    *models.AppointmentListResponse `json:"data"`
}

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/dentists/{dentistId}/appointments
// Query params: date (YYYY-MM-DD, optional), status (optional),
// includeInactive (true/false, optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	dentistIDStr := vars["dentistId"]
	dentistID, err := strconv.ParseInt(dentistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /dentists/{id}/appointments - Invalid dentist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDentistID)
		return
	}

	req := &models.ListByDentistRequest{DentistID: dentistID}

	// Опциональная дата
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := domain.ParseDate(dateStr)
		if err != nil {
			h.logger.Warn("GET /dentists/{id}/appointments - Invalid date: dentist_id=%d, error=%v", dentistID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	// Опциональный статус
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	req.IncludeInactive = r.URL.Query().Get("includeInactive") == "true"

	result, err := h.service.ListByDentist(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /dentists/{id}/appointments - Invalid status: dentist_id=%d", dentistID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /dentists/{id}/appointments - Failed to list appointments: dentist_id=%d, error=%v",
				dentistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /dentists/{id}/appointments - Appointments retrieved: dentist_id=%d, count=%d",
		dentistID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, &ListEnvelope{Success: true, Data: result})
}
