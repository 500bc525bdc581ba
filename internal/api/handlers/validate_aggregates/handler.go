package validate_aggregates

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nextdentist/booking-service/internal/api/handlers"
	"github.com/nextdentist/booking-service/internal/service/reviews/models"
)

const msgInvalidDentistID = "invalid dentist ID"

// Envelope HTTP response model
type Envelope struct {
	Success  bool                    `json:"success"`
	Report   *models.DriftReport     `json:"report"`
	Repaired *models.AggregateResult `json:"repaired,omitempty"`
}

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/dentists/{dentistId}/aggregates/validate
// Защищён админским JWT; query param repair=true чинит найденный дрейф
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	dentistIDStr := vars["dentistId"]
	dentistID, err := strconv.ParseInt(dentistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /admin/dentists/{id}/aggregates/validate - Invalid dentist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDentistID)
		return
	}

	report, err := h.service.ValidateAggregates(r.Context(), dentistID)
	if err != nil {
		h.logger.Error("POST /admin/dentists/{id}/aggregates/validate - Validation failed: dentist_id=%d, error=%v",
			dentistID, err)
		handlers.RespondInternalError(w)
		return
	}

	response := &Envelope{Success: true, Report: report}

	if report.Drifted && r.URL.Query().Get("repair") == "true" {
		response.Repaired = h.service.Recompute(r.Context(), dentistID)
	}

	h.logger.Info("POST /admin/dentists/{id}/aggregates/validate - Validation done: dentist_id=%d, drifted=%t",
		dentistID, report.Drifted)
	handlers.RespondJSON(w, http.StatusOK, response)
}
