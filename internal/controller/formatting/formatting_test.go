package formatting

import (
	"testing"

	"github.com/Freeeeeet/agenda/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFormatDay(t *testing.T) {
	assert.Equal(t, "14.10.2026 (Ср)", FormatDay("2026-10-14"))
	assert.Equal(t, "not-a-date", FormatDay("not-a-date"))
}

func TestFormatAppointment(t *testing.T) {
	end := "11:00:00"
	text := FormatAppointment(&model.Appointment{
		ID:      55,
		Date:    "2026-10-14",
		Time:    "10:00:00",
		EndTime: &end,
		Status:  model.AppointmentStatusScheduled,
	})

	assert.Contains(t, text, "Запись #55")
	assert.Contains(t, text, "14.10.2026 (Ср) в 10:00")
	assert.Contains(t, text, "До 11:00")
	assert.Contains(t, text, "Запланирована")
}

func TestGetAppointmentStatusDisplay_Unknown(t *testing.T) {
	assert.Equal(t, "Неизвестно", GetAppointmentStatusDisplay("lost").Text)
}
