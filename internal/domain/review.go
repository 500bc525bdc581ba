package domain

import "time"

// ReviewStatus represents the moderation status of a review
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "PENDING"
	ReviewApproved ReviewStatus = "APPROVED"
	ReviewRejected ReviewStatus = "REJECTED"
)

// IsValidReviewStatus проверяет, что строка — допустимый статус отзыва
func IsValidReviewStatus(s string) bool {
	switch ReviewStatus(s) {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return true
	default:
		return false
	}
}

// Review represents a patient review of a dentist
type Review struct {
	ID        int64
	DentistID int64
	UserID    *int64
	Rating    float64 // общая оценка отзыва
	Status    ReviewStatus
	Title     *string
	Body      *string

	// SubRatings пооценочные категории (чистота, пунктуальность, ...)
	SubRatings []ReviewRating

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsApproved returns true if the review contributes to dentist aggregates
func (r *Review) IsApproved() bool {
	return r.Status == ReviewApproved
}

// ReviewRating оценка отзыва по одной категории
type ReviewRating struct {
	ID       int64
	ReviewID int64
	Category RatingCategory
	Value    float64
}

// RatingCategory категория оценки (name — машинное имя, Label — отображаемое)
type RatingCategory struct {
	ID    int64
	Name  string
	Label *string
}

// DisplayName возвращает отображаемое имя категории:
// label, либо name, если label не задан
func (c RatingCategory) DisplayName() string {
	if c.Label != nil && *c.Label != "" {
		return *c.Label
	}
	return c.Name
}

// CrossesApprovedBoundary проверяет, что переход статусов пересекает
// границу APPROVED (вход или выход) — единственный триггер пересчёта
// агрегатов врача
func CrossesApprovedBoundary(old, new ReviewStatus) bool {
	return (old == ReviewApproved) != (new == ReviewApproved)
}
