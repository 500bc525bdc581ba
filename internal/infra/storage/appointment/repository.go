package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/nextdentist/booking-service/internal/domain"
	"github.com/nextdentist/booking-service/pkg/dbmetrics"
	"github.com/nextdentist/booking-service/pkg/psqlbuilder"
)

// pq код unique_violation
const uniqueViolationCode = "23505"

var appointmentColumns = []string{
	"id",
	"code",
	"dentist_id",
	"user_id",
	"patient_name",
	"patient_phone",
	"patient_email",
	"patient_age",
	"gender",
	"treatment_id",
	"treatment_name",
	"other_info",
	"appointment_date",
	"appointment_time",
	"status",
	"dentist_status",
	"patient_status",
	"status_reason",
	"last_modified_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на приём
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись на приём
// Если в контексте передана активная транзакция, использует её
//
// Частичный уникальный индекс по (dentist_id, appointment_date,
// appointment_time) среди активных статусов — последняя линия защиты от
// двойного бронирования; нарушение транслируется в ErrSlotTaken
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"code",
			"dentist_id",
			"user_id",
			"patient_name",
			"patient_phone",
			"patient_email",
			"patient_age",
			"gender",
			"treatment_id",
			"treatment_name",
			"other_info",
			"appointment_date",
			"appointment_time",
			"status",
			"dentist_status",
			"patient_status",
			"last_modified_by",
		).
		Values(
			appt.Code,
			appt.DentistID,
			appt.UserID,
			appt.PatientName,
			appt.PatientPhone,
			appt.PatientEmail,
			appt.PatientAge,
			appt.Gender,
			appt.TreatmentID,
			appt.TreatmentName,
			appt.OtherInfo,
			appt.AppointmentDate,
			appt.AppointmentTime,
			appt.Status,
			appt.DentistStatus,
			appt.PatientStatus,
			appt.LastModifiedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByCode получает запись по публичному UUID-коду
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Appointment, error) {
	return r.getOne(ctx, squirrel.Eq{"code": code})
}

// GetByDentistAndDate получает записи врача на конкретную дату,
// отсортированные по времени начала
//
// Внутри транзакции добавляет FOR UPDATE: пре-чек занятости слота в
// usecase создания записи блокирует конкурентов до вставки
func (r *Repository) GetByDentistAndDate(ctx context.Context, dentistID int64, date time.Time, includeInactive bool) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"dentist_id": dentistID}).
		Where(squirrel.Eq{"appointment_date": date}).
		OrderBy("appointment_time ASC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings()})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDentistAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDentistAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// ListByDentist получает записи врача с фильтрацией по дате и статусу
func (r *Repository) ListByDentist(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"dentist_id": filter.DentistID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"appointment_date": *filter.Date}).
			OrderBy("appointment_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC, appointment_time DESC")
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings()})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDentist - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDentist - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// ListByUser получает записи пациента-пользователя, сначала новые
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("appointment_date DESC, appointment_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// StatusUpdate изменение статусных полей записи
// nil поля не изменяются
type StatusUpdate struct {
	Status         *domain.AppointmentStatus
	DentistStatus  *domain.AppointmentStatus
	PatientStatus  *domain.AppointmentStatus
	StatusReason   *string
	LastModifiedBy domain.Actor
}

// UpdateStatus обновляет статусные поля записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, upd StatusUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("appointments").
		Set("last_modified_by", upd.LastModifiedBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.Status != nil {
		updateBuilder = updateBuilder.Set("status", *upd.Status)
	}
	if upd.DentistStatus != nil {
		updateBuilder = updateBuilder.Set("dentist_status", *upd.DentistStatus)
	}
	if upd.PatientStatus != nil {
		updateBuilder = updateBuilder.Set("patient_status", *upd.PatientStatus)
	}
	if upd.StatusReason != nil {
		updateBuilder = updateBuilder.Set("status_reason", *upd.StatusReason)
	}

	query, args, err := updateBuilder.ToSql()
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
		return ErrAppointmentNotFound
	}

	return nil
}

// Delete удаляет запись (физическое удаление, только для админских операций)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
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
		return ErrAppointmentNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appts, err := r.scanAppointments(rows)
	if err != nil {
		return nil, err
	}
	if len(appts) == 0 {
		return nil, ErrAppointmentNotFound
	}

	return appts[0], nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appts := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var createdAt, updatedAt sql.NullTime
		var lastModifiedBy sql.NullString

		err := rows.Scan(
			&appt.ID,
			&appt.Code,
			&appt.DentistID,
			&appt.UserID,
			&appt.PatientName,
			&appt.PatientPhone,
			&appt.PatientEmail,
			&appt.PatientAge,
			&appt.Gender,
			&appt.TreatmentID,
			&appt.TreatmentName,
			&appt.OtherInfo,
			&appt.AppointmentDate,
			&appt.AppointmentTime,
			&appt.Status,
			&appt.DentistStatus,
			&appt.PatientStatus,
			&appt.StatusReason,
			&lastModifiedBy,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %w", ErrScanRow, err)
		}

		if lastModifiedBy.Valid {
			actor := domain.Actor(lastModifiedBy.String)
			appt.LastModifiedBy = &actor
		}
		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time

		appts = append(appts, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appts, nil
}

func inactiveStatusStrings() []string {
	statuses := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// isUniqueViolation проверяет, что ошибка — нарушение уникального индекса
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
