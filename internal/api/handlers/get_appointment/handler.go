package get_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/nextdentist/booking-service/internal/api/handlers"
	"github.com/nextdentist/booking-service/internal/api/middleware"
	"github.com/nextdentist/booking-service/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "invalid appointment ID"
	msgInvalidCode          = "invalid appointment code"
	msgAppointmentNotFound  = "appointment not found"
	msgAccessDenied         = "access denied"
	msgUnauthorized         = "authentication required"
)

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

// Handle GET /api/v1/appointments/{appointmentId}
// Требует X-User-ID; пациент видит только свои записи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentIDStr := vars["appointmentId"]
	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments/{id} - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.GetByID(r.Context(), appointmentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/{id} - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /appointments/{id} - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /appointments/{id} - Failed to get appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/{id} - Appointment retrieved: appointment_id=%d, user_id=%d",
		appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

// HandleByCode GET /api/v1/appointments/code/{code}
// Публичный эндпоинт подтверждения записи по UUID-коду
func (h *Handler) HandleByCode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	code := vars["code"]
	if _, err := uuid.Parse(code); err != nil {
		h.logger.Warn("GET /appointments/code/{code} - Invalid code: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCode)
		return
	}

	result, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/code/{code} - Not found: code=%s", code)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		default:
			h.logger.Error("GET /appointments/code/{code} - Failed to get appointment: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/code/{code} - Appointment retrieved: code=%s", code)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
