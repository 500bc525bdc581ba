package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nextdentist/booking-service/internal/domain"
	apptRepo "github.com/nextdentist/booking-service/internal/infra/storage/appointment"
	dentistRepo "github.com/nextdentist/booking-service/internal/infra/storage/dentist"
	"github.com/nextdentist/booking-service/internal/integrations/notify"
)

// UseCase use case для создания записи на приём
type UseCase struct {
	appointmentRepo AppointmentRepository
	dentistRepo     DentistRepository
	txManager       TransactionManager
	notifier        Notifier // nil, если уведомления отключены
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	dentistRepo DentistRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		dentistRepo:     dentistRepo,
		txManager:       txManager,
		notifier:        notifier,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Пре-чек занятости и вставка выполняются в сериализуемой транзакции с
// FOR UPDATE; частичный уникальный индекс в БД страхует от гонки, которую
// транзакция не поймала
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: dentist=%d, date=%s, time=%s",
		req.DentistID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных (пополевая)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование врача
	dentist, err := uc.dentistRepo.GetByID(ctx, req.DentistID)
	if err != nil {
		if errors.Is(err, dentistRepo.ErrDentistNotFound) {
			uc.logger.Warn("CreateAppointment: dentist id=%d not found", req.DentistID)
			return nil, ErrDentistNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get dentist id=%d: %v", req.DentistID, err)
		return nil, fmt.Errorf("%w: failed to get dentist: %v", ErrInternal, err)
	}

	var result *domain.Appointment

	// 3. Пре-чек и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем активные записи врача на дату с блокировкой (FOR UPDATE)
		existing, err := uc.appointmentRepo.GetByDentistAndDate(txCtx, req.DentistID, req.Date, false)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 3.2. Слот занят, если активная запись уже стоит ровно на это время
		for _, appt := range existing {
			if appt.AppointmentTime == req.StartTime {
				uc.logger.Warn("CreateAppointment: slot taken, dentist=%d, date=%s, time=%s",
					req.DentistID, req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotTaken
			}
		}

		// 3.3. Создаем запись: все три статусных трека стартуют в PENDING
		actor := domain.ActorPatient
		appt := &domain.Appointment{
			Code:      uuid.NewString(),
			DentistID: req.DentistID,
			UserID:    req.UserID,

			PatientName:  req.PatientName,
			PatientPhone: req.PatientPhone,
			PatientEmail: req.PatientEmail,
			PatientAge:   req.PatientAge,
			Gender:       req.Gender,

			TreatmentID:   req.TreatmentID,
			TreatmentName: req.TreatmentName,
			OtherInfo:     req.OtherInfo,

			AppointmentDate: req.Date,
			AppointmentTime: req.StartTime,

			Status:         domain.StatusPending,
			DentistStatus:  domain.StatusPending,
			PatientStatus:  domain.StatusPending,
			LastModifiedBy: &actor,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, apptRepo.ErrSlotTaken) {
				// Уникальный индекс поймал гонку, которую не увидел пре-чек
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d code=%s", result.ID, result.Code)

	// 4. Отправляем подтверждение пациенту (best-effort, после коммита)
	uc.sendConfirmation(result, dentist)

	return &Response{
		ID:            result.ID,
		Code:          result.Code,
		DentistID:     result.DentistID,
		UserID:        result.UserID,
		Date:          result.AppointmentDate,
		StartTime:     result.AppointmentTime,
		Status:        string(result.Status),
		PatientName:   result.PatientName,
		PatientPhone:  result.PatientPhone,
		TreatmentName: result.TreatmentName,
		CreatedAt:     result.CreatedAt,
	}, nil
}

// sendConfirmation отправляет пациенту WhatsApp подтверждение
// Ошибка уведомления логируется и не влияет на результат записи
func (uc *UseCase) sendConfirmation(appt *domain.Appointment, dentist *domain.Dentist) {
	if uc.notifier == nil {
		return
	}

	conf := notify.AppointmentConfirmation{
		PatientName:  appt.PatientName,
		PatientPhone: appt.PatientPhone,
		DentistName:  dentist.Name,
		Date:         appt.AppointmentDate.Format(domain.DateFormat),
		Time:         appt.AppointmentTime.String(),
		Code:         appt.Code,
	}

	if err := uc.notifier.SendAppointmentConfirmation(conf); err != nil {
		uc.logger.Warn("CreateAppointment: confirmation not sent for appointment id=%d: %v", appt.ID, err)
	}
}
