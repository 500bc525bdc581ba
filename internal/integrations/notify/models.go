package notify

// AppointmentConfirmation данные для сообщения-подтверждения записи
type AppointmentConfirmation struct {
	PatientName  string
	PatientPhone string
	DentistName  string
	Date         string // YYYY-MM-DD
	Time         string // HH:MM
	Code         string // публичный код записи
}
