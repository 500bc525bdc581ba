package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nextdentist/booking-service/internal/service/reviews/models"
)

// DentistLister перечисляет врачей для фоновой сверки
type DentistLister interface {
	ListIDs(ctx context.Context) ([]int64, error)
}

// AggregateValidator сверяет и чинит агрегаты врача
type AggregateValidator interface {
	ValidateAggregates(ctx context.Context, dentistID int64) (*models.DriftReport, error)
	Recompute(ctx context.Context, dentistID int64) *models.AggregateResult
}

// DriftCounter счётчик обнаруженных расхождений агрегатов
type DriftCounter interface {
	IncAggregateDrift()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// DriftCheckJob фоновая сверка сохранённых агрегатов врачей с
// пересчитанными по одобренным отзывам. Обнаруженный дрейф чинится
// пересчётом на месте
type DriftCheckJob struct {
	dentists  DentistLister
	validator AggregateValidator
	counter   DriftCounter
	logger    Logger

	cron *cron.Cron
}

// NewDriftCheckJob создает новую фоновую сверку агрегатов
func NewDriftCheckJob(dentists DentistLister, validator AggregateValidator, counter DriftCounter, logger Logger) *DriftCheckJob {
	return &DriftCheckJob{
		dentists:  dentists,
		validator: validator,
		counter:   counter,
		logger:    logger,
		cron:      cron.New(),
	}
}

// Start регистрирует задачу по cron-расписанию и запускает планировщик
func (j *DriftCheckJob) Start(schedule string) error {
	if _, err := j.cron.AddFunc(schedule, j.runOnce); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("DriftCheckJob: started with schedule %q", schedule)

	return nil
}

// Stop останавливает планировщик и дожидается завершения текущего прогона
func (j *DriftCheckJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.logger.Info("DriftCheckJob: stopped")
}

func (j *DriftCheckJob) runOnce() {
	// Один прогон не должен зависнуть навсегда из-за БД
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ids, err := j.dentists.ListIDs(ctx)
	if err != nil {
		j.logger.Error("DriftCheckJob: failed to list dentists: %v", err)
		return
	}

	var drifted int
	for _, id := range ids {
		report, err := j.validator.ValidateAggregates(ctx, id)
		if err != nil {
			j.logger.Error("DriftCheckJob: validation failed for dentist=%d: %v", id, err)
			continue
		}

		if !report.Drifted {
			continue
		}

		drifted++
		if j.counter != nil {
			j.counter.IncAggregateDrift()
		}

		j.logger.Warn("DriftCheckJob: repairing aggregates for dentist=%d stored=(%.2f, %d) computed=(%.2f, %d)",
			id, report.StoredRating, report.StoredTotal, report.ComputedRating, report.ComputedTotal)

		j.validator.Recompute(ctx, id)
	}

	j.logger.Info("DriftCheckJob: checked %d dentists, drifted %d", len(ids), drifted)
}
