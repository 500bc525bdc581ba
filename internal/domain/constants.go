package domain

// Слоты всегда 30-минутные: длительность приёма фиксирована продуктом
const SlotDurationMinutes = 30

// Business validation constants
const (
	MinPhoneLength     = 7
	MaxPhoneLength     = 20
	MaxPatientNameLen  = 120
	MaxOtherInfoLength = 1000
	MaxStatusReasonLen = 500
	MinPatientAge      = 1
	MaxPatientAge      = 120
)

// Толерантность сравнения кэшированного рейтинга с пересчитанным
const AggregateDriftTolerance = 0.01

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, при которых запись не занимает слот
// Используются при вычислении занятости слотов
var InactiveStatuses = []AppointmentStatus{
	StatusRejected,
	StatusCancelledByPatient,
	StatusCancelledByDentist,
	StatusNoShow,
}

// ActiveStatuses статусы, при которых запись занимает слот
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusApproved,
	StatusRescheduled,
	StatusCompleted,
}
