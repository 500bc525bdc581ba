package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextdentist/booking-service/internal/domain"
	dentistRepo "github.com/nextdentist/booking-service/internal/infra/storage/dentist"
)

type fakeDentistRepo struct {
	dentist *domain.Dentist
	err     error
}

func (f *fakeDentistRepo) GetByID(_ context.Context, _ int64) (*domain.Dentist, error) {
	return f.dentist, f.err
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeAppointmentRepo) GetByDentistAndDate(_ context.Context, _ int64, _ time.Time, _ bool) ([]*domain.Appointment, error) {
	return f.appointments, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute_DefaultHoursWhenDentistNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeDentistRepo{err: dentistRepo.ErrDentistNotFound},
		&fakeAppointmentRepo{},
		nopLogger{},
	)

	// 2025-10-15 — среда, рабочий день по дефолтному расписанию
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{DentistID: 42, Date: date})
	require.NoError(t, err)

	assert.True(t, resp.UsedDefaultHours)
	// 09:00..16:30 с шагом 30 минут — 16 слотов
	require.Len(t, resp.Slots, 16)
	assert.Equal(t, "09:00", resp.Slots[0].Time.String())
	assert.Equal(t, "16:30", resp.Slots[15].Time.String())

	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
	}
}

func TestExecute_DefaultHoursOnWeekend(t *testing.T) {
	uc := NewUseCase(
		&fakeDentistRepo{err: dentistRepo.ErrDentistNotFound},
		&fakeAppointmentRepo{},
		nopLogger{},
	)

	// 2025-10-18 — суббота
	date := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{DentistID: 42, Date: date})
	require.NoError(t, err)

	assert.True(t, resp.UsedDefaultHours)
	assert.Empty(t, resp.Slots)
}

func TestExecute_OccupiedSlotMasked(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	uc := NewUseCase(
		&fakeDentistRepo{dentist: &domain.Dentist{ID: 42}}, // BusinessHours nil -> дефолт
		&fakeAppointmentRepo{appointments: []*domain.Appointment{
			{AppointmentTime: mustTime(t, "10:00"), Status: domain.StatusPending},
		}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{DentistID: 42, Date: date})
	require.NoError(t, err)

	assert.True(t, resp.UsedDefaultHours)

	var found bool
	for _, slot := range resp.Slots {
		if slot.Time.String() == "10:00" {
			found = true
			assert.False(t, slot.Available)
		} else {
			assert.True(t, slot.Available, "slot %s", slot.Time)
		}
	}
	assert.True(t, found)
}

func TestExecute_ConfiguredHoursUsed(t *testing.T) {
	hours := domain.BusinessHours{
		"Wednesday": {
			Closed: false,
			Hours:  []domain.HoursInterval{{From: "01:00 PM", To: "02:00 PM"}},
		},
	}

	uc := NewUseCase(
		&fakeDentistRepo{dentist: &domain.Dentist{ID: 42, BusinessHours: &hours}},
		&fakeAppointmentRepo{},
		nopLogger{},
	)

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{DentistID: 42, Date: date})
	require.NoError(t, err)

	assert.False(t, resp.UsedDefaultHours)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "13:00", resp.Slots[0].Time.String())
	assert.Equal(t, "13:30", resp.Slots[1].Time.String())
}

func TestExecute_BrokenHoursFallBackToDefaults(t *testing.T) {
	hours := domain.BusinessHours{
		"Wednesday": {
			Closed: false,
			Hours:  []domain.HoursInterval{{From: "not a time", To: "02:00 PM"}},
		},
	}

	uc := NewUseCase(
		&fakeDentistRepo{dentist: &domain.Dentist{ID: 42, BusinessHours: &hours}},
		&fakeAppointmentRepo{},
		nopLogger{},
	)

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{DentistID: 42, Date: date})
	require.NoError(t, err)

	assert.True(t, resp.UsedDefaultHours)
	assert.Len(t, resp.Slots, 16)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeDentistRepo{}, &fakeAppointmentRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{DentistID: 0, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{DentistID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_AppointmentsErrorIsFatal(t *testing.T) {
	uc := NewUseCase(
		&fakeDentistRepo{dentist: &domain.Dentist{ID: 42}},
		&fakeAppointmentRepo{err: errors.New("connection refused")},
		nopLogger{},
	)

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), &Request{DentistID: 42, Date: date})
	assert.ErrorIs(t, err, ErrInternal)
}
