package get_user_appointments

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nextdentist/booking-service/internal/api/handlers"
	"github.com/nextdentist/booking-service/internal/api/middleware"
	"github.com/nextdentist/booking-service/internal/service/appointments/models"
)

const (
	msgInvalidUserID = "invalid user ID"
	msgUnauthorized  = "authentication required"
	msgAccessDenied  = "access denied"
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

// Handle GET /api/v1/users/{userId}/appointments
// Требует X-User-ID; пользователь видит только свою историю
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	userIDStr := vars["userId"]
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/appointments - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	authUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/appointments - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if authUserID != userID {
		h.logger.Warn("GET /users/{id}/appointments - Access denied: user_id=%d, requested=%d",
			authUserID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	result, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/{id}/appointments - Failed to list appointments: user_id=%d, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{id}/appointments - Appointments retrieved: user_id=%d, count=%d",
		userID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, &ListEnvelope{Success: true, Data: result})
}
