package update_review_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nextdentist/booking-service/internal/api/handlers"
	"github.com/nextdentist/booking-service/internal/service/reviews"
	"github.com/nextdentist/booking-service/internal/service/reviews/models"
)

const (
	msgInvalidReviewID    = "invalid review ID"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidStatus      = "invalid review status, expected PENDING, APPROVED or REJECTED"
	msgReviewNotFound     = "review not found"
)

// UpdateReviewStatusRequest HTTP request model
type UpdateReviewStatusRequest struct {
	Status string `json:"status"`
}

// Envelope HTTP response model
type Envelope struct {
	Success bool                   `json:"success"`
	Data    *models.ReviewResponse `json:"data"`
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

// Handle PATCH /api/v1/admin/reviews/{reviewId}/status
// Защищён админским JWT
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reviewIDStr := vars["reviewId"]
	reviewID, err := strconv.ParseInt(reviewIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/reviews/{id}/status - Invalid review ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReviewID)
		return
	}

	var req UpdateReviewStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/reviews/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetStatus(r.Context(), reviewID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrReviewNotFound):
			h.logger.Warn("PATCH /admin/reviews/{id}/status - Not found: review_id=%d", reviewID)
			handlers.RespondNotFound(w, msgReviewNotFound)

		case errors.Is(err, reviews.ErrInvalidStatus):
			h.logger.Warn("PATCH /admin/reviews/{id}/status - Invalid status: review_id=%d, status=%s",
				reviewID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /admin/reviews/{id}/status - Failed to update status: review_id=%d, error=%v",
				reviewID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/reviews/{id}/status - Status updated: review_id=%d, status=%s",
		reviewID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, &Envelope{Success: true, Data: result})
}
