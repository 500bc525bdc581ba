package domain

import "time"

// Dentist represents a dentist profile
// Поля Rating и TotalReviews — кэшированные агрегаты, производные от
// одобренных отзывов; единственный их писатель — сервис отзывов
type Dentist struct {
	ID    int64
	Name  string
	Phone *string
	Email *string

	// BusinessHours nil, если врач не настроил расписание —
	// в этом случае используется DefaultBusinessHours()
	BusinessHours *BusinessHours

	Rating       float64
	TotalReviews int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HoursOrDefault возвращает настроенное расписание врача или дефолтное
func (d *Dentist) HoursOrDefault() (BusinessHours, bool) {
	if d.BusinessHours == nil {
		return DefaultBusinessHours(), true
	}
	return *d.BusinessHours, false
}
