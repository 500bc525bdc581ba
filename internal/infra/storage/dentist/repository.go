package dentist

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/nextdentist/booking-service/internal/domain"
	"github.com/nextdentist/booking-service/pkg/dbmetrics"
	"github.com/nextdentist/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с профилями врачей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория врачей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает врача по ID
// business_hours декодируется из JSONB один раз на границе хранилища;
// дальше по сервису ходит только типизированная domain.BusinessHours
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Dentist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"phone",
		"email",
		"business_hours",
		"rating",
		"total_reviews",
		"created_at",
		"updated_at",
	).
		From("dentists").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var d domain.Dentist
	var hoursRaw []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&d.ID,
		&d.Name,
		&d.Phone,
		&d.Email,
		&hoursRaw,
		&d.Rating,
		&d.TotalReviews,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrDentistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan dentist: %w", ErrScanRow, err)
	}

	if len(hoursRaw) > 0 {
		var hours domain.BusinessHours
		if err := json.Unmarshal(hoursRaw, &hours); err != nil {
			return nil, fmt.Errorf("%w: GetByID - decode business_hours: %v", ErrInvalidHours, err)
		}
		d.BusinessHours = &hours
	}

	d.CreatedAt = createdAt.Time
	d.UpdatedAt = updatedAt.Time

	return &d, nil
}

// UpdateAggregates записывает кэшированные агрегаты отзывов врача
// Единственный легитимный писатель этих полей — сервис отзывов
func (r *Repository) UpdateAggregates(ctx context.Context, dentistID int64, rating float64, totalReviews int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("dentists").
		Set("rating", rating).
		Set("total_reviews", totalReviews).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": dentistID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateAggregates - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateAggregates - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateAggregates - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDentistNotFound
	}

	return nil
}

// GetAggregates читает кэшированные агрегаты отзывов врача
func (r *Repository) GetAggregates(ctx context.Context, dentistID int64) (float64, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("rating", "total_reviews").
		From("dentists").
		Where(squirrel.Eq{"id": dentistID}).
		ToSql()

	if err != nil {
		return 0, 0, fmt.Errorf("%w: GetAggregates - build select query: %v", ErrBuildQuery, err)
	}

	var rating float64
	var totalReviews int

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rating, &totalReviews)
	if err == sql.ErrNoRows {
		return 0, 0, ErrDentistNotFound
	}
	if err != nil {
		return 0, 0, fmt.Errorf("%w: GetAggregates - scan aggregates: %w", ErrScanRow, err)
	}

	return rating, totalReviews, nil
}

// ListIDs возвращает ID всех врачей
// Используется фоновой проверкой дрейфа агрегатов
func (r *Repository) ListIDs(ctx context.Context) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("dentists").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListIDs - scan id: %w", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListIDs - rows error: %w", ErrScanRow, err)
	}

	return ids, nil
}
