package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/nextdentist/booking-service/internal/domain"
	apptRepo "github.com/nextdentist/booking-service/internal/infra/storage/appointment"
	"github.com/nextdentist/booking-service/internal/service/appointments/models"
	"github.com/nextdentist/booking-service/pkg/ptr"
)

// Service сервис для работы с записями на приём
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Пациент видит только свою запись; гостевые записи доступны
// только по публичному коду через GetByCode
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if appt.UserID == nil || *appt.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt), nil
}

// GetByCode получает запись по публичному UUID-коду
// Используется для подтверждения записи без авторизации, поэтому
// проверка владельца не выполняется
func (s *Service) GetByCode(ctx context.Context, code string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByCode: fetching appointment code=%s", code)

	appt, err := s.appointmentRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByCode: appointment code=%s not found", code)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByCode: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// ListByUser получает записи пациента-пользователя
func (s *Service) ListByUser(ctx context.Context, userID int64) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByUser: fetching appointments for user=%d", userID)

	appts, err := s.appointmentRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByUser: fetched %d appointments for user=%d", len(appts), userID)
	return models.FromDomainAppointmentList(appts), nil
}

// ListByDentist получает записи врача с фильтрацией по дате и статусу
func (s *Service) ListByDentist(ctx context.Context, req *models.ListByDentistRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByDentist: fetching appointments for dentist=%d", req.DentistID)

	filter := domain.AppointmentsFilter{
		DentistID:       req.DentistID,
		Date:            req.Date,
		IncludeInactive: req.IncludeInactive,
	}

	if req.Status != nil {
		if !domain.IsValidAppointmentStatus(*req.Status) {
			s.logger.Warn("ListByDentist: invalid status=%s for dentist=%d", *req.Status, req.DentistID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = ptr.Ptr(domain.AppointmentStatus(*req.Status))
	}

	appts, err := s.appointmentRepo.ListByDentist(ctx, filter)
	if err != nil {
		s.logger.Error("ListByDentist: repository error for dentist=%d: %v", req.DentistID, err)
		return nil, fmt.Errorf("%w: ListByDentist - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDentist: fetched %d appointments for dentist=%d", len(appts), req.DentistID)
	return models.FromDomainAppointmentList(appts), nil
}

// UpdateStatus изменяет статус записи
// Меняется общий статус и статусный трек действующей стороны; кто изменил,
// фиксируется в last_modified_by
func (s *Service) UpdateStatus(ctx context.Context, apptID int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by %s",
		apptID, req.Status, req.Actor)

	if !domain.IsValidAppointmentStatus(req.Status) {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, apptID)
		return nil, ErrInvalidStatus
	}

	current, err := s.appointmentRepo.GetByID(ctx, apptID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", apptID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", apptID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	newStatus := domain.AppointmentStatus(req.Status)
	upd := apptRepo.StatusUpdate{
		Status:         &newStatus,
		StatusReason:   req.Reason,
		LastModifiedBy: req.Actor,
	}

	// Трек действующей стороны следует за общим статусом; чужой трек
	// не трогаем (правила согласования треков см. DESIGN.md)
	switch req.Actor {
	case domain.ActorDentist:
		upd.DentistStatus = &newStatus
	case domain.ActorPatient:
		upd.PatientStatus = &newStatus
	case domain.ActorAdmin:
		// Админ меняет только общий статус
	default:
		s.logger.Warn("UpdateStatus: invalid actor=%s for appointment id=%d", req.Actor, apptID)
		return nil, fmt.Errorf("%w: invalid actor", ErrInvalidInput)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, apptID, upd); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", apptID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	updated, err := s.appointmentRepo.GetByID(ctx, apptID)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to reload appointment id=%d: %v", apptID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - reload error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: appointment id=%d status %s -> %s", apptID, current.Status, newStatus)

	return models.FromDomainAppointment(updated), nil
}

// Cancel отменяет запись
// Пациент отменяет со статусом CANCELLED_BY_PATIENT, врач и админ —
// CANCELLED_BY_DENTIST
func (s *Service) Cancel(ctx context.Context, apptID int64, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d by %s", apptID, req.Actor)

	appt, err := s.appointmentRepo.GetByID(ctx, apptID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", apptID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", apptID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", apptID, appt.Status)
		return nil, ErrCannotCancel
	}

	var cancelStatus domain.AppointmentStatus
	switch req.Actor {
	case domain.ActorPatient:
		cancelStatus = domain.StatusCancelledByPatient
	case domain.ActorDentist, domain.ActorAdmin:
		cancelStatus = domain.StatusCancelledByDentist
	default:
		s.logger.Warn("Cancel: invalid actor=%s for appointment id=%d", req.Actor, apptID)
		return nil, fmt.Errorf("%w: invalid actor", ErrInvalidInput)
	}

	statusReq := &models.UpdateStatusRequest{
		Actor:  req.Actor,
		Status: string(cancelStatus),
		Reason: req.Reason,
	}

	return s.UpdateStatus(ctx, apptID, statusReq)
}
