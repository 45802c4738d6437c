package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay - длина календарного дня в минутах
const MinutesPerDay = 24 * 60

var ErrInvalidTimeOfDay = errors.New("invalid time of day")

// ParseTimeOfDay переводит "HH:MM" или "HH:MM:SS" в минуты от начала дня.
// Секунды допускаются, но отбрасываются
func ParseTimeOfDay(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	limits := []int{23, 59, 59}
	values := make([]int, len(parts))
	for i, part := range parts {
		if len(part) != 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
		}
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 || v > limits[i] {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
		}
		values[i] = v
	}

	return values[0]*60 + values[1], nil
}

// FormatTimeOfDay форматирует минуты от начала дня как HH:MM:SS
func FormatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

// NormalizeTimeOfDay приводит "HH:MM" / "HH:MM:SS" к виду HH:MM:SS.
// Слоты начинаются на целой минуте, поэтому ненулевые секунды - ошибка
func NormalizeTimeOfDay(s string) (string, error) {
	minutes, err := ParseTimeOfDay(s)
	if err != nil {
		return "", err
	}
	if parts := strings.Split(strings.TrimSpace(s), ":"); len(parts) == 3 && parts[2] != "00" {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return FormatTimeOfDay(minutes), nil
}

// label возвращает HH:MM для отображения
func label(value string) string {
	if len(value) < 5 {
		return value
	}
	return value[:5]
}
