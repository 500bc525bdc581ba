package get_availability

import (
	"github.com/nextdentist/booking-service/internal/domain"
	getAvailability "github.com/nextdentist/booking-service/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Success        bool            `json:"success"`
	DentistID      int64           `json:"dentistId"`
	Date           string          `json:"date"`
	Slots          []AvailableSlot `json:"slots"`
	IsDefaultHours bool            `json:"isDefaultHours"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(dentistID int64, dateStr string) (*getAvailability.Request, error) {
	// Парсим дату
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		DentistID: dentistID,
		Date:      date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:      slot.Time.String(),
			Available: slot.Available,
		}
	}

	return &AvailabilityResponse{
		Success:        true,
		DentistID:      resp.DentistID,
		Date:           resp.Date.Format(domain.DateFormat),
		Slots:          slots,
		IsDefaultHours: resp.UsedDefaultHours,
	}
}
