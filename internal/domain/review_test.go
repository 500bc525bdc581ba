package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrossesApprovedBoundary(t *testing.T) {
	tests := []struct {
		old, new ReviewStatus
		want     bool
	}{
		{ReviewPending, ReviewApproved, true},
		{ReviewRejected, ReviewApproved, true},
		{ReviewApproved, ReviewPending, true},
		{ReviewApproved, ReviewRejected, true},
		{ReviewPending, ReviewRejected, false},
		{ReviewRejected, ReviewPending, false},
		{ReviewApproved, ReviewApproved, false},
		{ReviewPending, ReviewPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CrossesApprovedBoundary(tt.old, tt.new),
			"%s -> %s", tt.old, tt.new)
	}
}

func TestRatingCategory_DisplayName(t *testing.T) {
	label := "Cleanliness"
	empty := ""

	assert.Equal(t, "Cleanliness", RatingCategory{Name: "cleanliness", Label: &label}.DisplayName())
	assert.Equal(t, "cleanliness", RatingCategory{Name: "cleanliness"}.DisplayName())
	assert.Equal(t, "cleanliness", RatingCategory{Name: "cleanliness", Label: &empty}.DisplayName())
}

func TestAppointment_IsActive(t *testing.T) {
	for _, s := range ActiveStatuses {
		a := Appointment{Status: s}
		assert.True(t, a.IsActive(), "status %s", s)
	}
	for _, s := range InactiveStatuses {
		a := Appointment{Status: s}
		assert.False(t, a.IsActive(), "status %s", s)
	}
}

func TestAppointment_CanBeCancelled(t *testing.T) {
	cancellable := map[AppointmentStatus]bool{
		StatusPending:            true,
		StatusApproved:           true,
		StatusRescheduled:        true,
		StatusRejected:           false,
		StatusCancelledByPatient: false,
		StatusCancelledByDentist: false,
		StatusCompleted:          false,
		StatusNoShow:             false,
	}

	for status, want := range cancellable {
		a := Appointment{Status: status}
		assert.Equal(t, want, a.CanBeCancelled(), "status %s", status)
	}
}
