package get_availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/nextdentist/booking-service/internal/domain"
	"github.com/nextdentist/booking-service/pkg/types"
)

// GenerateSlots генерирует упорядоченный список времён начала слотов на день
// по расписанию врача. Чистая функция: без I/O, детерминированная
//
// Слоты идут с шагом domain.SlotDurationMinutes от начала интервала;
// интервал полуоткрытый [from, to): последний слот строго раньше to,
// само to никогда не эмитится. Интервалы обрабатываются в порядке записи,
// пересечения и дубликаты не схлопываются — за корректность интервалов
// отвечает редактор расписания
func GenerateSlots(hours domain.BusinessHours, date time.Time) ([]types.TimeString, error) {
	day := hours.ScheduleFor(date)
	if day.Closed {
		return []types.TimeString{}, nil
	}

	slots := make([]types.TimeString, 0)

	for _, interval := range day.Hours {
		from, err := parseClock12(interval.From)
		if err != nil {
			return nil, fmt.Errorf("%w: interval start %q: %v", ErrInternal, interval.From, err)
		}

		to, err := parseClock12(interval.To)
		if err != nil {
			return nil, fmt.Errorf("%w: interval end %q: %v", ErrInternal, interval.To, err)
		}

		for minutes := from; minutes < to; minutes += domain.SlotDurationMinutes {
			slot, err := types.NewTimeStringFromMinutes(minutes)
			if err != nil {
				return nil, fmt.Errorf("%w: slot at %d minutes: %v", ErrInternal, minutes, err)
			}
			slots = append(slots, slot)
		}
	}

	return slots, nil
}

// parseClock12 парсит 12-часовое время "hh:mm AM|PM" в минуты с начала суток
// Полночь — "12:00 AM" (час 0), полдень — "12:00 PM" (час 12)
func parseClock12(s string) (int, error) {
	var hour, minute int
	var marker string

	n, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d %s", &hour, &minute, &marker)
	if err != nil || n != 3 {
		return 0, fmt.Errorf("invalid 12-hour time %q", s)
	}

	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid 12-hour time %q", s)
	}

	switch strings.ToUpper(marker) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return 0, fmt.Errorf("invalid AM/PM marker in %q", s)
	}

	return hour*60 + minute, nil
}

// occupiedTimes собирает множество занятых времён из записей на день
func occupiedTimes(appointments []*domain.Appointment) map[types.TimeString]struct{} {
	occupied := make(map[types.TimeString]struct{}, len(appointments))
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		occupied[appt.AppointmentTime] = struct{}{}
	}
	return occupied
}

// markAvailability строит итоговый список слотов с признаком доступности
func markAvailability(allSlots []types.TimeString, occupied map[types.TimeString]struct{}) []Slot {
	result := make([]Slot, len(allSlots))
	for i, t := range allSlots {
		_, taken := occupied[t]
		result[i] = Slot{Time: t, Available: !taken}
	}
	return result
}
