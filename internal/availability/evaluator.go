package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/agenda/internal/model"
)

// DateLayout - формат календарной даты запросов и записей
const DateLayout = "2006-01-02"

var ErrInvalidWorkingHours = errors.New("invalid working hours")

// Query - всё что нужно для расчёта слотов на один день.
// Данные уже загружены, расчёт не делает I/O
type Query struct {
	WorkingHours model.WorkingHours
	Interval     *string   // интервал предприятия как он сохранён
	Date         time.Time // используются только год, месяц и день
	// ServiceDuration - длительность выбранной услуги, 0 если услуга не указана
	ServiceDuration int
	Appointments    []*model.Appointment
	// ExcludeAppointmentID не учитывается при переносе самой записи
	ExcludeAppointmentID int64
}

// Evaluator считает доступность слотов, разделяя кэш сеток между запросами
type Evaluator struct {
	grid *Grid
}

func NewEvaluator(grid *Grid) *Evaluator {
	return &Evaluator{grid: grid}
}

// Evaluate возвращает слоты дня в порядке возрастания времени.
// Если специалист не работает в этот день недели - пустой список
func (e *Evaluator) Evaluate(q Query) ([]model.SlotCandidate, error) {
	interval := ParseSlotInterval(q.Interval)

	day := time.Date(q.Date.Year(), q.Date.Month(), q.Date.Day(), 0, 0, 0, 0, time.UTC)
	if !q.WorkingHours.WorksOn(day.Weekday()) {
		return []model.SlotCandidate{}, nil
	}

	from, err := ParseTimeOfDay(q.WorkingHours.TimeFrom)
	if err != nil {
		return nil, fmt.Errorf("%w: time from: %v", ErrInvalidWorkingHours, err)
	}
	to, err := ParseTimeOfDay(q.WorkingHours.TimeTo)
	if err != nil {
		return nil, fmt.Errorf("%w: time to: %v", ErrInvalidWorkingHours, err)
	}

	requiredSlots := 1
	if q.ServiceDuration > 0 {
		requiredSlots = interval.RequiredSlots(q.ServiceDuration)
	}

	// Оставляем только слоты внутри [from, to], обе границы включительно
	professionalSlots := make([]int, 0)
	for _, minute := range e.grid.Slots(interval) {
		if minute >= from && minute <= to {
			professionalSlots = append(professionalSlots, minute)
		}
	}

	windows := buildWindows(q.Appointments, day.Format(DateLayout), interval, q.ExcludeAppointmentID)
	blocked := blockedStarts(windows, interval)

	candidates := make([]model.SlotCandidate, 0, len(professionalSlots))
	for i, minute := range professionalSlots {
		// Окно должно целиком помещаться в сетку специалиста
		fits := i+requiredSlots <= len(professionalSlots)
		// Проверяется только первый слот окна
		_, isBlocked := blocked[minute]

		value := FormatTimeOfDay(minute)
		candidates = append(candidates, model.SlotCandidate{
			Value:     value,
			Label:     label(value),
			Available: fits && !isBlocked,
		})
	}

	return candidates, nil
}

// IsAvailable проверяет что время (HH:MM или HH:MM:SS) есть среди доступных слотов
func IsAvailable(candidates []model.SlotCandidate, timeOfDay string) bool {
	value, err := NormalizeTimeOfDay(timeOfDay)
	if err != nil {
		return false
	}
	for _, c := range candidates {
		if c.Value == value {
			return c.Available
		}
	}
	return false
}

// ParseDate разбирает YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
