package create_appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextdentist/booking-service/pkg/ptr"
)

func TestToUseCaseRequest_LegacyAliases(t *testing.T) {
	req := CreateAppointmentRequest{
		DentistID:    7,
		Date:         "2025-10-15",
		Time:         "10:00",
		PatientName:  "Jane Doe",
		PatientPhone: "+15551234567",
		Message:      ptr.Ptr("first visit"),
	}

	ucReq, err := req.ToUseCaseRequest()
	require.NoError(t, err)

	assert.Equal(t, "2025-10-15", ucReq.Date.Format("2006-01-02"))
	assert.Equal(t, "10:00", ucReq.StartTime.String())
	require.NotNil(t, ucReq.OtherInfo)
	assert.Equal(t, "first visit", *ucReq.OtherInfo)
}

func TestToUseCaseRequest_CanonicalFieldsWinOverAliases(t *testing.T) {
	req := CreateAppointmentRequest{
		DentistID:       7,
		AppointmentDate: "2025-10-15",
		Date:            "2025-01-01",
		AppointmentTime: "10:00",
		Time:            "08:00",
		PatientName:     "Jane Doe",
		PatientPhone:    "+15551234567",
		OtherInfo:       ptr.Ptr("canonical"),
		Message:         ptr.Ptr("legacy"),
	}

	ucReq, err := req.ToUseCaseRequest()
	require.NoError(t, err)

	assert.Equal(t, "2025-10-15", ucReq.Date.Format("2006-01-02"))
	assert.Equal(t, "10:00", ucReq.StartTime.String())
	assert.Equal(t, "canonical", *ucReq.OtherInfo)
}

func TestToUseCaseRequest_BadDate(t *testing.T) {
	req := CreateAppointmentRequest{
		AppointmentDate: "15/10/2025",
		AppointmentTime: "10:00",
	}

	_, err := req.ToUseCaseRequest()
	assert.Error(t, err)
}

func TestToUseCaseRequest_NonPaddedDate(t *testing.T) {
	req := CreateAppointmentRequest{
		AppointmentDate: "2025-6-1",
		AppointmentTime: "10:00",
	}

	_, err := req.ToUseCaseRequest()
	assert.Error(t, err)
}

func TestToUseCaseRequest_BadTime(t *testing.T) {
	req := CreateAppointmentRequest{
		AppointmentDate: "2025-10-15",
		AppointmentTime: "10 o'clock",
	}

	_, err := req.ToUseCaseRequest()
	assert.Error(t, err)
}
