package model

import "time"

// WorkingHours описывает недельное окно работы специалиста
type WorkingHours struct {
	WeekdayFrom int    `json:"available_from_week_day"` // 0 = Sunday, 6 = Saturday
	WeekdayTo   int    `json:"available_to_week_day"`   // включительно, без перехода через воскресенье
	TimeFrom    string `json:"available_from_time"`     // HH:MM:SS
	TimeTo      string `json:"available_to_time"`       // HH:MM:SS
}

// WorksOn проверяет попадает ли день недели в рабочий диапазон
func (w WorkingHours) WorksOn(weekday time.Weekday) bool {
	day := int(weekday)
	return day >= w.WeekdayFrom && day <= w.WeekdayTo
}

type Professional struct {
	ID           int64        `json:"id"`
	EnterpriseID int64        `json:"enterprise_id"`
	Name         string       `json:"name"`
	WorkingHours WorkingHours `json:"working_hours"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
