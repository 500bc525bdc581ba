package domain

import "time"

// HoursInterval рабочий интервал дня в 12-часовом формате
// Например {From: "09:00 AM", To: "05:00 PM"}
type HoursInterval struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DaySchedule расписание одного дня недели
// Если Closed == true, интервалы игнорируются
type DaySchedule struct {
	Closed bool            `json:"Closed"`
	Hours  []HoursInterval `json:"Hours"`
}

// BusinessHours расписание врача: имя дня недели -> расписание дня
// Хранится в JSONB поле dentists.business_hours; ключи — английские
// названия дней ("Monday".."Sunday"), независимо от локали
type BusinessHours map[string]DaySchedule

// ScheduleFor возвращает расписание на день недели указанной даты
// Отсутствующий в расписании день считается закрытым
func (h BusinessHours) ScheduleFor(date time.Time) DaySchedule {
	day, ok := h[date.Weekday().String()]
	if !ok {
		return DaySchedule{Closed: true}
	}
	return day
}

// DefaultBusinessHours дефолтное расписание для врачей без настроенных
// рабочих часов: Пн-Пт 09:00-17:00, Сб/Вс закрыто
func DefaultBusinessHours() BusinessHours {
	weekday := DaySchedule{
		Closed: false,
		Hours:  []HoursInterval{{From: "09:00 AM", To: "05:00 PM"}},
	}

	return BusinessHours{
		time.Monday.String():    weekday,
		time.Tuesday.String():   weekday,
		time.Wednesday.String(): weekday,
		time.Thursday.String():  weekday,
		time.Friday.String():    weekday,
		time.Saturday.String():  {Closed: true},
		time.Sunday.String():    {Closed: true},
	}
}
