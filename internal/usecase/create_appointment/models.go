package create_appointment

import (
	"time"

	"github.com/nextdentist/booking-service/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	DentistID int64            // ID врача
	UserID    *int64           // ID пациента-пользователя (nil для гостевой записи)
	Date      time.Time        // Дата приёма (без времени)
	StartTime types.TimeString // Время начала слота ("HH:MM")

	PatientName  string  // Имя пациента
	PatientPhone string  // Телефон пациента (обязателен)
	PatientEmail *string // Email (опционально)
	PatientAge   *int    // Возраст (опционально)
	Gender       *string // Пол (опционально)

	TreatmentID   *int64  // ID услуги (опционально)
	TreatmentName *string // Название услуги (опционально)
	OtherInfo     *string // Свободный комментарий (опционально)
}

// Response модель ответа с созданной записью (минимальная проекция)
type Response struct {
	ID        int64            // ID созданной записи
	Code      string           // Публичный код записи
	DentistID int64            // ID врача
	UserID    *int64           // ID пациента-пользователя
	Date      time.Time        // Дата приёма
	StartTime types.TimeString // Время начала
	Status    string           // Общий статус записи

	PatientName   string  // Имя пациента
	PatientPhone  string  // Телефон пациента
	TreatmentName *string // Название услуги

	CreatedAt time.Time // Время создания
}
