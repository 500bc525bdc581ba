package reviews

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/nextdentist/booking-service/internal/domain"
	reviewRepo "github.com/nextdentist/booking-service/internal/infra/storage/review"
	"github.com/nextdentist/booking-service/internal/service/reviews/models"
)

// Service сервис модерации отзывов и пересчёта агрегатов врача
type Service struct {
	reviewRepo  ReviewRepository
	dentistRepo DentistRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(reviewRepo ReviewRepository, dentistRepo DentistRepository, logger Logger) *Service {
	return &Service{
		reviewRepo:  reviewRepo,
		dentistRepo: dentistRepo,
		logger:      logger,
	}
}

// SetStatus изменяет статус модерации отзыва.
// Агрегаты врача пересчитываются только при пересечении границы APPROVED:
// переходы PENDING->REJECTED и обратно витрину не меняют
func (s *Service) SetStatus(ctx context.Context, reviewID int64, status string) (*models.ReviewResponse, error) {
	s.logger.Info("SetStatus: updating review id=%d to status=%s", reviewID, status)

	if !domain.IsValidReviewStatus(status) {
		s.logger.Warn("SetStatus: invalid status=%s for review id=%d", status, reviewID)
		return nil, ErrInvalidStatus
	}

	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			s.logger.Warn("SetStatus: review id=%d not found", reviewID)
			return nil, ErrReviewNotFound
		}
		s.logger.Error("SetStatus: repository error for review id=%d: %v", reviewID, err)
		return nil, fmt.Errorf("%w: SetStatus - repository error: %v", ErrInternal, err)
	}

	oldStatus := review.Status
	newStatus := domain.ReviewStatus(status)

	if err := s.reviewRepo.UpdateStatus(ctx, reviewID, newStatus); err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		s.logger.Error("SetStatus: repository error for review id=%d: %v", reviewID, err)
		return nil, fmt.Errorf("%w: SetStatus - repository error: %v", ErrInternal, err)
	}

	if domain.CrossesApprovedBoundary(oldStatus, newStatus) {
		// Ошибка пересчёта не откатывает модерацию
		s.Recompute(ctx, review.DentistID)
	}

	review.Status = newStatus
	s.logger.Info("SetStatus: review id=%d status %s -> %s", reviewID, oldStatus, newStatus)

	return models.FromDomainReview(review), nil
}

// Delete удаляет отзыв вместе с пооценочными категориями.
// Если удалён одобренный отзыв, агрегаты врача пересчитываются
func (s *Service) Delete(ctx context.Context, reviewID int64) (*models.DeleteResult, error) {
	s.logger.Info("Delete: deleting review id=%d", reviewID)

	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			s.logger.Warn("Delete: review id=%d not found", reviewID)
			return nil, ErrReviewNotFound
		}
		s.logger.Error("Delete: repository error for review id=%d: %v", reviewID, err)
		return nil, fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		s.logger.Error("Delete: repository error for review id=%d: %v", reviewID, err)
		return nil, fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if review.IsApproved() {
		s.Recompute(ctx, review.DentistID)
	}

	s.logger.Info("Delete: review id=%d deleted", reviewID)

	return &models.DeleteResult{
		Message:   "Review deleted successfully",
		DeletedID: reviewID,
	}, nil
}

// Recompute пересчитывает рейтинг и счётчик отзывов врача по одобренным
// отзывам и сохраняет их.
// Ошибки не возвращаются наверх: пересчёт вторичен по отношению к
// операции модерации, все сбои уходят в лог и чинятся фоновой сверкой
func (s *Service) Recompute(ctx context.Context, dentistID int64) *models.AggregateResult {
	approved, err := s.reviewRepo.ListApprovedByDentist(ctx, dentistID)
	if err != nil {
		s.logger.Error("Recompute: failed to list approved reviews for dentist=%d: %v", dentistID, err)
		return nil
	}

	rating, total := computeOverall(approved)

	if err := s.dentistRepo.UpdateAggregates(ctx, dentistID, rating, total); err != nil {
		s.logger.Error("Recompute: failed to store aggregates for dentist=%d: %v", dentistID, err)
		return nil
	}

	s.logger.Info("Recompute: dentist=%d rating=%.2f totalReviews=%d", dentistID, rating, total)

	return &models.AggregateResult{
		DentistID:    dentistID,
		Rating:       rating,
		TotalReviews: total,
		Categories:   computeCategoryAverages(approved),
	}
}

// ValidateAggregates сверяет сохранённые агрегаты врача с пересчитанными.
// Допустимое расхождение рейтинга — domain.AggregateDriftTolerance
func (s *Service) ValidateAggregates(ctx context.Context, dentistID int64) (*models.DriftReport, error) {
	storedRating, storedTotal, err := s.dentistRepo.GetAggregates(ctx, dentistID)
	if err != nil {
		s.logger.Error("ValidateAggregates: failed to load aggregates for dentist=%d: %v", dentistID, err)
		return nil, fmt.Errorf("%w: ValidateAggregates - repository error: %v", ErrInternal, err)
	}

	approved, err := s.reviewRepo.ListApprovedByDentist(ctx, dentistID)
	if err != nil {
		s.logger.Error("ValidateAggregates: failed to list approved reviews for dentist=%d: %v", dentistID, err)
		return nil, fmt.Errorf("%w: ValidateAggregates - repository error: %v", ErrInternal, err)
	}

	computedRating, computedTotal := computeOverall(approved)

	drifted := storedTotal != computedTotal ||
		math.Abs(storedRating-computedRating) > domain.AggregateDriftTolerance

	if drifted {
		s.logger.Warn("ValidateAggregates: drift for dentist=%d stored=(%.2f, %d) computed=(%.2f, %d)",
			dentistID, storedRating, storedTotal, computedRating, computedTotal)
	}

	return &models.DriftReport{
		DentistID:      dentistID,
		StoredRating:   storedRating,
		StoredTotal:    storedTotal,
		ComputedRating: computedRating,
		ComputedTotal:  computedTotal,
		Drifted:        drifted,
	}, nil
}
