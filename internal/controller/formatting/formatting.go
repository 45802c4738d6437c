package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/agenda/internal/model"
)

// StatusDisplay содержит emoji и текст для отображения статуса
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetAppointmentStatusDisplay возвращает emoji и текст для статуса записи
func GetAppointmentStatusDisplay(status model.AppointmentStatus) StatusDisplay {
	displays := map[model.AppointmentStatus]StatusDisplay{
		model.AppointmentStatusScheduled: {"🕒", "Запланирована"},
		model.AppointmentStatusConfirmed: {"✅", "Подтверждена"},
		model.AppointmentStatusCompleted: {"✔️", "Завершена"},
		model.AppointmentStatusCanceled:  {"❌", "Отменена"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}

// GetWeekdayShortName возвращает краткое название дня недели на русском
func GetWeekdayShortName(weekday time.Weekday) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if int(weekday) >= 0 && int(weekday) < len(names) {
		return names[weekday]
	}
	return "?"
}

// FormatDay форматирует дату YYYY-MM-DD как "14.10.2026 (Ср)"
func FormatDay(date string) string {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s (%s)", day.Format("02.01.2006"), GetWeekdayShortName(day.Weekday()))
}

// FormatClock обрезает HH:MM:SS до HH:MM
func FormatClock(value string) string {
	if len(value) >= 5 {
		return value[:5]
	}
	return value
}

// FormatAppointment форматирует запись для сообщения
func FormatAppointment(appt *model.Appointment) string {
	display := GetAppointmentStatusDisplay(appt.Status)

	text := fmt.Sprintf(
		"%s Запись #%d\n\n"+
			"📅 %s в %s\n"+
			"📊 Статус: %s",
		display.Emoji,
		appt.ID,
		FormatDay(appt.Date),
		FormatClock(appt.Time),
		display.Text,
	)

	if appt.EndTime != nil {
		text += fmt.Sprintf("\n⏱ До %s", FormatClock(*appt.EndTime))
	}

	return text
}
