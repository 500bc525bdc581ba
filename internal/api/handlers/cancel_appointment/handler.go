package cancel_appointment

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
	msgInvalidAppointmentID = "invalid appointment ID"
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidActor         = "invalid actor, expected admin, dentist or patient"
	msgAppointmentNotFound  = "appointment not found"
	msgCannotCancel         = "appointment can no longer be cancelled"
)

// CancelRequest HTTP request model
type CancelRequest struct {
	Actor  string  `json:"actor"`
	Reason *string `json:"reason,omitempty"`
}

// Envelope HTTP response model
type Envelope struct {
	Success bool                        `json:"success"`
	Data    *models.AppointmentResponse `json:"data"`
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

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentIDStr := vars["appointmentId"]
	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req CancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := domain.Actor(req.Actor)
	switch actor {
	case domain.ActorAdmin, domain.ActorDentist, domain.ActorPatient:
	default:
		h.logger.Warn("POST /appointments/{id}/cancel - Invalid actor: appointment_id=%d, actor=%s",
			appointmentID, req.Actor)
		handlers.RespondBadRequest(w, msgInvalidActor)
		return
	}

	serviceReq := &models.CancelRequest{
		Actor:  actor,
		Reason: req.Reason,
	}

	result, err := h.service.Cancel(r.Context(), appointmentID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/cancel - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrCannotCancel):
			h.logger.Warn("POST /appointments/{id}/cancel - Cannot cancel: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/cancel - Invalid input: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidActor)

		default:
			h.logger.Error("POST /appointments/{id}/cancel - Failed to cancel appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/cancel - Appointment cancelled: appointment_id=%d, actor=%s",
		appointmentID, req.Actor)
	handlers.RespondJSON(w, http.StatusOK, &Envelope{Success: true, Data: result})
}
