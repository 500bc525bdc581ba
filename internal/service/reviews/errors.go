package reviews

import "errors"

var (
	ErrReviewNotFound = errors.New("reviews: review not found")
	ErrInvalidStatus  = errors.New("reviews: invalid review status")
	ErrInternal       = errors.New("reviews: internal error")
)
