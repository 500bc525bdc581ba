package update_appointment_status

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
	msgInvalidStatus        = "invalid appointment status"
	msgInvalidActor         = "invalid actor, expected admin, dentist or patient"
	msgAppointmentNotFound  = "appointment not found"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Actor  string  `json:"actor"`
	Status string  `json:"status"`
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

// Handle PATCH /api/v1/appointments/{appointmentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentIDStr := vars["appointmentId"]
	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := domain.Actor(req.Actor)
	switch actor {
	case domain.ActorAdmin, domain.ActorDentist, domain.ActorPatient:
	default:
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid actor: appointment_id=%d, actor=%s",
			appointmentID, req.Actor)
		handlers.RespondBadRequest(w, msgInvalidActor)
		return
	}

	serviceReq := &models.UpdateStatusRequest{
		Actor:  actor,
		Status: req.Status,
		Reason: req.Reason,
	}

	result, err := h.service.UpdateStatus(r.Context(), appointmentID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/status - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid status: appointment_id=%d, status=%s",
				appointmentID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid input: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidActor)

		default:
			h.logger.Error("PATCH /appointments/{id}/status - Failed to update status: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - Status updated: appointment_id=%d, status=%s, actor=%s",
		appointmentID, req.Status, req.Actor)
	handlers.RespondJSON(w, http.StatusOK, &Envelope{Success: true, Data: result})
}
