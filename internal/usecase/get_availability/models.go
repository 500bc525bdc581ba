package get_availability

import (
	"time"

	"github.com/nextdentist/booking-service/pkg/types"
)

// Request модель запроса на получение доступности слотов
type Request struct {
	DentistID int64     // ID врача
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов на день
type Response struct {
	DentistID        int64     // ID врача
	Date             time.Time // Дата, на которую запрашивались слоты
	Slots            []Slot    // Все слоты дня с признаком доступности
	UsedDefaultHours bool      // Использовалось ли дефолтное расписание
}

// Slot модель временного слота
// Эфемерное значение: вычисляется на каждый запрос заново, не хранится
type Slot struct {
	Time      types.TimeString // Время начала слота ("HH:MM")
	Available bool             // Свободен ли слот
}
