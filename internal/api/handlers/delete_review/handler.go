package delete_review

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nextdentist/booking-service/internal/api/handlers"
	"github.com/nextdentist/booking-service/internal/service/reviews"
)

const (
	msgInvalidReviewID = "invalid review ID"
	msgReviewNotFound  = "review not found"
)

// Envelope HTTP response model
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	DeletedID int64  `json:"deletedId"`
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

// Handle DELETE /api/v1/admin/reviews/{reviewId}
// Защищён админским JWT; пооценочные категории удаляются каскадом
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reviewIDStr := vars["reviewId"]
	reviewID, err := strconv.ParseInt(reviewIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/reviews/{id} - Invalid review ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReviewID)
		return
	}

	result, err := h.service.Delete(r.Context(), reviewID)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrReviewNotFound):
			h.logger.Warn("DELETE /admin/reviews/{id} - Not found: review_id=%d", reviewID)
			handlers.RespondNotFound(w, msgReviewNotFound)

		default:
			h.logger.Error("DELETE /admin/reviews/{id} - Failed to delete review: review_id=%d, error=%v",
				reviewID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/reviews/{id} - Review deleted: review_id=%d", reviewID)
	handlers.RespondJSON(w, http.StatusOK, &Envelope{
		Success:   true,
		Message:   result.Message,
		DeletedID: result.DeletedID,
	})
}
