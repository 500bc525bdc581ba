package models

import (
	"time"

	"github.com/nextdentist/booking-service/internal/domain"
)

// ReviewResponse представление отзыва для API
type ReviewResponse struct {
	ID        int64   `json:"id"`
	DentistID int64   `json:"dentistId"`
	UserID    *int64  `json:"userId,omitempty"`
	Rating    float64 `json:"rating"`
	Status    string  `json:"status"`
	Title     *string `json:"title,omitempty"`
	Body      *string `json:"body,omitempty"`

	SubRatings []SubRatingResponse `json:"subRatings,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// SubRatingResponse оценка по одной категории
type SubRatingResponse struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// AggregateResult результат пересчёта агрегатов врача
type AggregateResult struct {
	DentistID    int64             `json:"dentistId"`
	Rating       float64           `json:"rating"`
	TotalReviews int               `json:"totalReviews"`
	Categories   []CategoryAverage `json:"categories,omitempty"`
}

// CategoryAverage средняя оценка по категории среди одобренных отзывов
type CategoryAverage struct {
	Category string  `json:"category"`
	Average  float64 `json:"average"`
	Count    int     `json:"count"`
}

// DriftReport результат сверки сохранённых агрегатов с пересчитанными
type DriftReport struct {
	DentistID      int64   `json:"dentistId"`
	StoredRating   float64 `json:"storedRating"`
	StoredTotal    int     `json:"storedTotal"`
	ComputedRating float64 `json:"computedRating"`
	ComputedTotal  int     `json:"computedTotal"`
	Drifted        bool    `json:"drifted"`
}

// DeleteResult результат удаления отзыва
type DeleteResult struct {
	Message   string `json:"message"`
	DeletedID int64  `json:"deletedId"`
}

// FromDomainReview конвертирует domain.Review в API представление
func FromDomainReview(r *domain.Review) *ReviewResponse {
	resp := &ReviewResponse{
		ID:        r.ID,
		DentistID: r.DentistID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Status:    string(r.Status),
		Title:     r.Title,
		Body:      r.Body,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
	}

	for _, sr := range r.SubRatings {
		resp.SubRatings = append(resp.SubRatings, SubRatingResponse{
			Category: sr.Category.DisplayName(),
			Value:    sr.Value,
		})
	}

	return resp
}
