package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/nextdentist/booking-service/internal/domain"
	dentistRepo "github.com/nextdentist/booking-service/internal/infra/storage/dentist"
)

// UseCase use case для получения доступности слотов врача на дату
type UseCase struct {
	dentistRepo     DentistRepository
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	dentistRepo DentistRepository,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		dentistRepo:     dentistRepo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступности слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: dentist=%d, date=%s",
		req.DentistID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем расписание врача
	// Доступность дня имеет смысл и без профиля: если врач не найден или
	// чтение расписания сломалось, молча подставляем дефолтные часы
	hours, usedDefault := uc.resolveHours(ctx, req.DentistID)

	// 3. Генерируем все слоты дня по расписанию
	allSlots, err := GenerateSlots(hours, req.Date)
	if err != nil {
		// Расписание врача не парсится — считаем его отсутствующим
		uc.logger.Warn("GetAvailability: stored hours unusable for dentist=%d, falling back to defaults: %v",
			req.DentistID, err)

		usedDefault = true
		allSlots, err = GenerateSlots(domain.DefaultBusinessHours(), req.Date)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to generate default slots: %v", err)
			return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}
	}

	// 4. Получаем записи врача на эту дату
	// Неактивные записи (отменённые, отклонённые) слот не занимают
	appointments, err := uc.appointmentRepo.GetByDentistAndDate(ctx, req.DentistID, req.Date, false)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 5. Помечаем занятые слоты
	slots := markAvailability(allSlots, occupiedTimes(appointments))

	uc.logger.Info("GetAvailability: generated %d slots for dentist=%d, date=%s (default_hours=%t)",
		len(slots), req.DentistID, req.Date.Format(domain.DateFormat), usedDefault)

	return &Response{
		DentistID:        req.DentistID,
		Date:             req.Date,
		Slots:            slots,
		UsedDefaultHours: usedDefault,
	}, nil
}

// resolveHours возвращает расписание врача или дефолтное
// Ошибки чтения профиля не фатальны и приводят к дефолтному расписанию
func (uc *UseCase) resolveHours(ctx context.Context, dentistID int64) (domain.BusinessHours, bool) {
	dentist, err := uc.dentistRepo.GetByID(ctx, dentistID)
	if err != nil {
		if errors.Is(err, dentistRepo.ErrDentistNotFound) {
			uc.logger.Warn("GetAvailability: dentist id=%d not found, using default hours", dentistID)
		} else {
			uc.logger.Error("GetAvailability: failed to get dentist id=%d, using default hours: %v", dentistID, err)
		}
		return domain.DefaultBusinessHours(), true
	}

	return dentist.HoursOrDefault()
}
