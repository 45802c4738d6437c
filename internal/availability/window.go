package availability

import "github.com/Freeeeeet/agenda/internal/model"

// Window - занятый полуинтервал [Start, End) в минутах от начала дня
type Window struct {
	Start int
	End   int
}

// buildWindows строит окна занятости для записей на указанную дату.
// Отменённые записи, записи на другие даты и исключённая запись пропускаются
func buildWindows(appointments []*model.Appointment, date string, interval SlotInterval, excludeID int64) []Window {
	windows := make([]Window, 0, len(appointments))

	for _, appt := range appointments {
		if appt == nil || appt.IsCanceled() {
			continue
		}
		if excludeID != 0 && appt.ID == excludeID {
			continue
		}
		if appt.Date != date {
			continue
		}

		window, ok := appointmentWindow(appt, interval)
		if !ok {
			continue
		}
		windows = append(windows, window)
	}

	return windows
}

// appointmentWindow вычисляет окно одной записи: явные start/end если есть,
// иначе time + длительность услуги
func appointmentWindow(appt *model.Appointment, interval SlotInterval) (Window, bool) {
	startRaw := appt.Time
	if appt.StartTime != nil && *appt.StartTime != "" {
		startRaw = *appt.StartTime
	}

	start, err := ParseTimeOfDay(startRaw)
	if err != nil {
		return Window{}, false
	}

	var end int
	if appt.EndTime != nil && *appt.EndTime != "" {
		end, err = ParseTimeOfDay(*appt.EndTime)
		if err != nil {
			return Window{}, false
		}
	} else {
		duration := appt.ServiceDurationInMinutes
		if duration <= 0 {
			// Без длительности запись занимает один слот
			duration = interval.Minutes()
		}
		end = start + duration
	}

	if end > MinutesPerDay {
		end = MinutesPerDay
	}
	if end <= start {
		return Window{}, false
	}

	return Window{Start: start, End: end}, true
}

// blockedStarts обходит каждое окно от Start до End с шагом интервала
// и отмечает посещённые позиции как занятые
func blockedStarts(windows []Window, interval SlotInterval) map[int]struct{} {
	step := interval.Minutes()
	blocked := make(map[int]struct{})
	for _, w := range windows {
		for minute := w.Start; minute < w.End; minute += step {
			blocked[minute] = struct{}{}
		}
	}
	return blocked
}
