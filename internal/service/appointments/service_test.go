package appointments

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextdentist/booking-service/internal/domain"
	apptRepo "github.com/nextdentist/booking-service/internal/infra/storage/appointment"
	"github.com/nextdentist/booking-service/internal/service/appointments/models"
	"github.com/nextdentist/booking-service/pkg/ptr"
)

type fakeRepo struct {
	appointments map[int64]*domain.Appointment
	lastFilter   *domain.AppointmentsFilter
	lastUpdate   *apptRepo.StatusUpdate
}

func newFakeRepo(appts ...*domain.Appointment) *fakeRepo {
	m := make(map[int64]*domain.Appointment, len(appts))
	for _, a := range appts {
		m[a.ID] = a
	}
	return &fakeRepo{appointments: m}
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	out := *a
	return &out, nil
}

func (f *fakeRepo) GetByCode(_ context.Context, code string) (*domain.Appointment, error) {
	for _, a := range f.appointments {
		if a.Code == code {
			out := *a
			return &out, nil
		}
	}
	return nil, apptRepo.ErrAppointmentNotFound
}

func (f *fakeRepo) ListByDentist(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = &filter
	var out []*domain.Appointment
	for _, a := range f.appointments {
		if a.DentistID == filter.DentistID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID int64) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range f.appointments {
		if a.UserID != nil && *a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, upd apptRepo.StatusUpdate) error {
	a, ok := f.appointments[id]
	if !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	f.lastUpdate = &upd
	if upd.Status != nil {
		a.Status = *upd.Status
	}
	if upd.DentistStatus != nil {
		a.DentistStatus = *upd.DentistStatus
	}
	if upd.PatientStatus != nil {
		a.PatientStatus = *upd.PatientStatus
	}
	if upd.StatusReason != nil {
		a.StatusReason = upd.StatusReason
	}
	actor := upd.LastModifiedBy
	a.LastModifiedBy = &actor
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func appointment(id int64, userID *int64, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		Code:            fmt.Sprintf("00000000-0000-0000-0000-%012d", id),
		DentistID:       7,
		UserID:          userID,
		PatientName:     "Jane Doe",
		PatientPhone:    "+15551234567",
		AppointmentDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		Status:          status,
		DentistStatus:   status,
		PatientStatus:   status,
	}
}

func TestGetByID_OwnerAccess(t *testing.T) {
	svc := NewService(newFakeRepo(appointment(1, ptr.Ptr(int64(10)), domain.StatusPending)), nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = svc.GetByID(context.Background(), 1, 11)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_GuestAppointmentDeniedToUsers(t *testing.T) {
	// Гостевая запись (UserID == nil) не принадлежит никому
	svc := NewService(newFakeRepo(appointment(1, nil, domain.StatusPending)), nopLogger{})

	_, err := svc.GetByID(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	_, err := svc.GetByID(context.Background(), 42, 10)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestUpdateStatus_DentistTrack(t *testing.T) {
	repo := newFakeRepo(appointment(1, nil, domain.StatusPending))
	svc := NewService(repo, nopLogger{})

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Actor:  domain.ActorDentist,
		Status: "APPROVED",
	})
	require.NoError(t, err)

	assert.Equal(t, "APPROVED", resp.Status)
	assert.Equal(t, "APPROVED", resp.DentistStatus)
	// Чужой трек не трогаем
	assert.Equal(t, "PENDING", resp.PatientStatus)

	require.NotNil(t, repo.lastUpdate)
	assert.Equal(t, domain.ActorDentist, repo.lastUpdate.LastModifiedBy)
	assert.Nil(t, repo.lastUpdate.PatientStatus)
}

func TestUpdateStatus_AdminTouchesOnlyOverall(t *testing.T) {
	repo := newFakeRepo(appointment(1, nil, domain.StatusPending))
	svc := NewService(repo, nopLogger{})

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Actor:  domain.ActorAdmin,
		Status: "COMPLETED",
	})
	require.NoError(t, err)

	assert.Equal(t, "COMPLETED", resp.Status)
	assert.Equal(t, "PENDING", resp.DentistStatus)
	assert.Equal(t, "PENDING", resp.PatientStatus)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc := NewService(newFakeRepo(appointment(1, nil, domain.StatusPending)), nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Actor:  domain.ActorDentist,
		Status: "BOGUS",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancel_PatientSetsPatientCancellation(t *testing.T) {
	repo := newFakeRepo(appointment(1, ptr.Ptr(int64(10)), domain.StatusApproved))
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelRequest{
		Actor:  domain.ActorPatient,
		Reason: ptr.Ptr("cannot make it"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelledByPatient), resp.Status)
	require.NotNil(t, resp.StatusReason)
	assert.Equal(t, "cannot make it", *resp.StatusReason)
}

func TestCancel_DentistSetsDentistCancellation(t *testing.T) {
	repo := newFakeRepo(appointment(1, nil, domain.StatusPending))
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelRequest{Actor: domain.ActorDentist})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelledByDentist), resp.Status)
}

func TestCancel_CompletedCannotBeCancelled(t *testing.T) {
	svc := NewService(newFakeRepo(appointment(1, nil, domain.StatusCompleted)), nopLogger{})

	_, err := svc.Cancel(context.Background(), 1, &models.CancelRequest{Actor: domain.ActorPatient})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	svc := NewService(newFakeRepo(appointment(1, nil, domain.StatusCancelledByPatient)), nopLogger{})

	_, err := svc.Cancel(context.Background(), 1, &models.CancelRequest{Actor: domain.ActorPatient})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestListByDentist_PassesFilter(t *testing.T) {
	repo := newFakeRepo(appointment(1, nil, domain.StatusPending))
	svc := NewService(repo, nopLogger{})

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	status := "APPROVED"

	_, err := svc.ListByDentist(context.Background(), &models.ListByDentistRequest{
		DentistID:       7,
		Date:            &date,
		Status:          &status,
		IncludeInactive: true,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter)
	assert.Equal(t, int64(7), repo.lastFilter.DentistID)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusApproved, *repo.lastFilter.Status)
	assert.True(t, repo.lastFilter.IncludeInactive)
}

func TestListByDentist_InvalidStatus(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	status := "BOGUS"
	_, err := svc.ListByDentist(context.Background(), &models.ListByDentistRequest{
		DentistID: 7,
		Status:    &status,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByUser(t *testing.T) {
	repo := newFakeRepo(
		appointment(1, ptr.Ptr(int64(10)), domain.StatusPending),
		appointment(2, ptr.Ptr(int64(11)), domain.StatusPending),
		appointment(3, ptr.Ptr(int64(10)), domain.StatusCompleted),
	)
	svc := NewService(repo, nopLogger{})

	resp, err := svc.ListByUser(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
}
