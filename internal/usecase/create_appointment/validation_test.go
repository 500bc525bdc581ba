package create_appointment

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextdentist/booking-service/pkg/ptr"
	"github.com/nextdentist/booking-service/pkg/types"
)

func validRequest(t *testing.T) *Request {
	t.Helper()

	startTime, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)

	return &Request{
		DentistID:    1,
		Date:         time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:    startTime,
		PatientName:  "Jane Doe",
		PatientPhone: "+1 (555) 123-4567",
	}
}

func TestValidateRequest_Valid(t *testing.T) {
	assert.NoError(t, validateRequest(validRequest(t)))
}

func TestValidateRequest_CollectsAllFieldErrors(t *testing.T) {
	req := &Request{
		DentistID:    0,
		PatientName:  "",
		PatientPhone: "",
	}

	err := validateRequest(req)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Все невалидные поля возвращаются разом
	gotFields := make([]string, len(vErr.Fields))
	for i, f := range vErr.Fields {
		gotFields[i] = f.Field
	}
	assert.Contains(t, gotFields, "dentistId")
	assert.Contains(t, gotFields, "appointmentDate")
	assert.Contains(t, gotFields, "appointmentTime")
	assert.Contains(t, gotFields, "patientName")
	assert.Contains(t, gotFields, "patientPhone")
}

func TestValidateRequest_PatientName(t *testing.T) {
	req := validRequest(t)
	req.PatientName = strings.Repeat("a", 121)

	err := validateRequest(req)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "patientName", vErr.Fields[0].Field)
}

func TestValidateRequest_Email(t *testing.T) {
	req := validRequest(t)
	req.PatientEmail = ptr.Ptr("not-an-email")

	err := validateRequest(req)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "patientEmail", vErr.Fields[0].Field)
}

func TestValidateRequest_AgeRange(t *testing.T) {
	for _, age := range []int{0, -5, 121} {
		req := validRequest(t)
		req.PatientAge = ptr.Ptr(age)

		err := validateRequest(req)
		require.Error(t, err, "age %d", age)
	}

	req := validRequest(t)
	req.PatientAge = ptr.Ptr(35)
	assert.NoError(t, validateRequest(req))
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		want  string
	}{
		{"", "is required"},
		{"   ", "is required"},
		{"+1 (555) 123-4567", ""},
		{"5551234", ""},
		{"123456", "is too short"},
		{strings.Repeat("1", 21), "is too long"},
		{"555-ABC-1234", "contains invalid characters"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, validatePhone(tt.phone), "phone %q", tt.phone)
	}
}
