package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextdentist/booking-service/internal/domain"
	apptRepo "github.com/nextdentist/booking-service/internal/infra/storage/appointment"
	dentistRepo "github.com/nextdentist/booking-service/internal/infra/storage/dentist"
	"github.com/nextdentist/booking-service/internal/integrations/notify"
	"github.com/nextdentist/booking-service/pkg/types"
)

type fakeAppointmentRepo struct {
	existing  []*domain.Appointment
	createErr error
	created   *domain.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *appt
	out.ID = 101
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	f.created = &out
	return &out, nil
}

func (f *fakeAppointmentRepo) GetByDentistAndDate(_ context.Context, _ int64, _ time.Time, _ bool) ([]*domain.Appointment, error) {
	return f.existing, nil
}

type fakeDentistRepo struct {
	dentist *domain.Dentist
	err     error
}

func (f *fakeDentistRepo) GetByID(_ context.Context, _ int64) (*domain.Dentist, error) {
	return f.dentist, f.err
}

// fakeTxManager исполняет fn без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	sent []notify.AppointmentConfirmation
	err  error
}

func (f *fakeNotifier) SendAppointmentConfirmation(conf notify.AppointmentConfirmation) error {
	f.sent = append(f.sent, conf)
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func newRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		DentistID:    7,
		Date:         time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:    mustTime(t, "10:00"),
		PatientName:  "Jane Doe",
		PatientPhone: "+15551234567",
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	notifier := &fakeNotifier{}

	uc := NewUseCase(
		repo,
		&fakeDentistRepo{dentist: &domain.Dentist{ID: 7, Name: "Dr. Smith"}},
		fakeTxManager{},
		notifier,
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), newRequest(t))
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.NotEmpty(t, resp.Code)
	assert.Equal(t, string(domain.StatusPending), resp.Status)

	// Все три статусных трека стартуют в PENDING
	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusPending, repo.created.Status)
	assert.Equal(t, domain.StatusPending, repo.created.DentistStatus)
	assert.Equal(t, domain.StatusPending, repo.created.PatientStatus)
	require.NotNil(t, repo.created.LastModifiedBy)
	assert.Equal(t, domain.ActorPatient, *repo.created.LastModifiedBy)

	// Подтверждение ушло пациенту
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "Dr. Smith", notifier.sent[0].DentistName)
	assert.Equal(t, resp.Code, notifier.sent[0].Code)
}

func TestExecute_SlotTakenByPrecheck(t *testing.T) {
	repo := &fakeAppointmentRepo{
		existing: []*domain.Appointment{
			{AppointmentTime: mustTime(t, "10:00"), Status: domain.StatusApproved},
		},
	}

	uc := NewUseCase(
		repo,
		&fakeDentistRepo{dentist: &domain.Dentist{ID: 7}},
		fakeTxManager{},
		nil,
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), newRequest(t))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Nil(t, repo.created)
}

func TestExecute_SlotTakenByUniqueIndex(t *testing.T) {
	// Пре-чек ничего не увидел, гонку поймал частичный уникальный индекс
	repo := &fakeAppointmentRepo{createErr: apptRepo.ErrSlotTaken}

	uc := NewUseCase(
		repo,
		&fakeDentistRepo{dentist: &domain.Dentist{ID: 7}},
		fakeTxManager{},
		nil,
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), newRequest(t))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_OtherSlotDoesNotBlock(t *testing.T) {
	repo := &fakeAppointmentRepo{
		existing: []*domain.Appointment{
			{AppointmentTime: mustTime(t, "10:30"), Status: domain.StatusApproved},
		},
	}

	uc := NewUseCase(
		repo,
		&fakeDentistRepo{dentist: &domain.Dentist{ID: 7}},
		fakeTxManager{},
		nil,
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), newRequest(t))
	require.NoError(t, err)
	assert.Equal(t, "10:00", resp.StartTime.String())
}

func TestExecute_DentistNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeAppointmentRepo{},
		&fakeDentistRepo{err: dentistRepo.ErrDentistNotFound},
		fakeTxManager{},
		nil,
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), newRequest(t))
	assert.ErrorIs(t, err, ErrDentistNotFound)
}

func TestExecute_NotifierFailureDoesNotFailBooking(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("twilio down")}

	uc := NewUseCase(
		&fakeAppointmentRepo{},
		&fakeDentistRepo{dentist: &domain.Dentist{ID: 7}},
		fakeTxManager{},
		notifier,
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), newRequest(t))
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
}

func TestExecute_ValidationFailureSkipsRepo(t *testing.T) {
	repo := &fakeAppointmentRepo{}

	uc := NewUseCase(
		repo,
		&fakeDentistRepo{dentist: &domain.Dentist{ID: 7}},
		fakeTxManager{},
		nil,
		nopLogger{},
	)

	req := newRequest(t)
	req.PatientPhone = ""

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, repo.created)
}
