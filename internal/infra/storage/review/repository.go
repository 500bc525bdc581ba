package review

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/nextdentist/booking-service/internal/domain"
	"github.com/nextdentist/booking-service/pkg/dbmetrics"
	"github.com/nextdentist/booking-service/pkg/psqlbuilder"
)

var reviewColumns = []string{
	"id",
	"dentist_id",
	"user_id",
	"rating",
	"status",
	"title",
	"body",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с отзывами и пооценочными категориями
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает отзыв по ID вместе с пооценочными категориями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	rev, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan review: %w", ErrScanRow, err)
	}

	subRatings, err := r.loadSubRatings(ctx, []int64{rev.ID})
	if err != nil {
		return nil, err
	}
	rev.SubRatings = subRatings[rev.ID]

	return rev, nil
}

// ListApprovedByDentist получает все одобренные отзывы врача вместе с
// пооценочными категориями — исходные данные пересчёта агрегатов
func (r *Repository) ListApprovedByDentist(ctx context.Context, dentistID int64) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"dentist_id": dentistID}).
		Where(squirrel.Eq{"status": domain.ReviewApproved}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListApprovedByDentist - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListApprovedByDentist - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	ids := make([]int64, 0)

	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListApprovedByDentist - scan review: %w", ErrScanRow, err)
		}
		reviews = append(reviews, rev)
		ids = append(ids, rev.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListApprovedByDentist - rows error: %w", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return reviews, nil
	}

	subRatings, err := r.loadSubRatings(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, rev := range reviews {
		rev.SubRatings = subRatings[rev.ID]
	}

	return reviews, nil
}

// UpdateStatus переводит отзыв в новый статус модерации
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReviewStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reviews").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReviewNotFound
	}

	return nil
}

// Delete удаляет отзыв; пооценочные категории каскадируются на уровне БД
// (review_ratings.review_id ON DELETE CASCADE)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReviewNotFound
	}

	return nil
}

// loadSubRatings загружает пооценочные категории для набора отзывов
func (r *Repository) loadSubRatings(ctx context.Context, reviewIDs []int64) (map[int64][]domain.ReviewRating, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"rr.id",
		"rr.review_id",
		"rr.value",
		"c.id",
		"c.name",
		"c.label",
	).
		From("review_ratings rr").
		Join("rating_categories c ON c.id = rr.category_id").
		Where(squirrel.Eq{"rr.review_id": reviewIDs}).
		OrderBy("rr.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadSubRatings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadSubRatings - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.ReviewRating)

	for rows.Next() {
		var rr domain.ReviewRating
		err := rows.Scan(
			&rr.ID,
			&rr.ReviewID,
			&rr.Value,
			&rr.Category.ID,
			&rr.Category.Name,
			&rr.Category.Label,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: loadSubRatings - scan row: %w", ErrScanRow, err)
		}
		result[rr.ReviewID] = append(result[rr.ReviewID], rr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadSubRatings - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReview(row rowScanner) (*domain.Review, error) {
	var rev domain.Review
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rev.ID,
		&rev.DentistID,
		&rev.UserID,
		&rev.Rating,
		&rev.Status,
		&rev.Title,
		&rev.Body,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rev.CreatedAt = createdAt.Time
	rev.UpdatedAt = updatedAt.Time

	return &rev, nil
}
