package availability

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultSlotInterval используется когда интервал не задан или не распознан
const DefaultSlotInterval SlotInterval = 30

var intervalPattern = regexp.MustCompile(`^(\d+)\s*(h|hora|horas|hr|hrs|m|min|mins|minute|minutes)?$`)

// maxSlotInterval - интервал длиннее суток даёт ту же сетку из одного слота 00:00:00
const maxSlotInterval = MinutesPerDay

// SlotInterval - шаг сетки слотов в минутах, всегда положительный
type SlotInterval int

// ParseSlotInterval нормализует интервал предприятия из свободного текста.
// Ошибок не бывает: всё нераспознанное превращается в DefaultSlotInterval
func ParseSlotInterval(raw *string) SlotInterval {
	if raw == nil {
		return DefaultSlotInterval
	}

	s := strings.ToLower(strings.TrimSpace(*raw))
	if s == "" {
		return DefaultSlotInterval
	}

	if m := intervalPattern.FindStringSubmatch(s); m != nil {
		value, err := strconv.Atoi(m[1])
		if err != nil || value <= 0 {
			return DefaultSlotInterval
		}
		if strings.HasPrefix(m[2], "h") {
			if value > maxSlotInterval/60 {
				return maxSlotInterval
			}
			return SlotInterval(value * 60)
		}
		return capInterval(value)
	}

	// Последняя попытка - просто целое число (например "+45")
	value, err := strconv.Atoi(s)
	if err != nil || value <= 0 {
		return DefaultSlotInterval
	}
	return capInterval(value)
}

func capInterval(minutes int) SlotInterval {
	if minutes > maxSlotInterval {
		return maxSlotInterval
	}
	return SlotInterval(minutes)
}

// ParseSlotIntervalString - то же что ParseSlotInterval для непустой строки
func ParseSlotIntervalString(raw string) SlotInterval {
	return ParseSlotInterval(&raw)
}

// Minutes возвращает интервал в минутах
func (i SlotInterval) Minutes() int {
	if i <= 0 {
		return int(DefaultSlotInterval)
	}
	return int(i)
}

// RequiredSlots считает сколько подряд идущих слотов займёт услуга
func (i SlotInterval) RequiredSlots(durationInMinutes int) int {
	interval := i.Minutes()
	if durationInMinutes <= 0 {
		return 1
	}
	slots := (durationInMinutes + interval - 1) / interval
	if slots < 1 {
		return 1
	}
	return slots
}
