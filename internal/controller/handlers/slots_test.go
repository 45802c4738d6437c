package handlers

import (
	"errors"
	"testing"

	"github.com/Freeeeeet/agenda/internal/model"
	"github.com/Freeeeeet/agenda/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCandidates() []model.SlotCandidate {
	return []model.SlotCandidate{
		{Value: "08:00:00", Label: "08:00", Available: true},
		{Value: "08:30:00", Label: "08:30", Available: false},
		{Value: "09:00:00", Label: "09:00", Available: true},
		{Value: "09:30:00", Label: "09:30", Available: true},
		{Value: "10:00:00", Label: "10:00", Available: true},
		{Value: "10:30:00", Label: "10:30", Available: true},
	}
}

func TestSlotKeyboard(t *testing.T) {
	req := slotsRequest{ProfessionalID: 10, Date: "2026-10-14", ServiceID: int64Ptr(3)}

	markup, count := slotKeyboard(req, testCandidates())
	require.NotNil(t, markup)
	assert.Equal(t, 5, count)

	require.Len(t, markup.InlineKeyboard, 2)
	assert.Len(t, markup.InlineKeyboard[0], 4)
	assert.Equal(t, "08:00", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "book:10:2026-10-14:0800:3", markup.InlineKeyboard[0][0].CallbackData)
	// занятый 08:30 пропущен
	assert.Equal(t, "09:00", markup.InlineKeyboard[0][1].Text)
}

func TestSlotKeyboard_NoServiceNoButtons(t *testing.T) {
	markup, count := slotKeyboard(slotsRequest{ProfessionalID: 10, Date: "2026-10-14"}, testCandidates())
	assert.Nil(t, markup)
	assert.Zero(t, count)
}

func TestSlotsSummary(t *testing.T) {
	req := slotsRequest{ProfessionalID: 10, Date: "2026-10-14"}

	assert.Contains(t, slotsSummary(req, nil), "не работает")
	assert.Contains(t, slotsSummary(req, []model.SlotCandidate{{Label: "08:00"}}), "Свободного времени нет")

	text := slotsSummary(req, testCandidates())
	assert.Contains(t, text, "Свободно слотов: 5 из 6")
	assert.Contains(t, text, "укажите услугу")
	assert.NotContains(t, text, "08:30")
}

func TestUserMessage(t *testing.T) {
	assert.Contains(t, userMessage(service.ErrSlotTaken), "уже занято")
	assert.Contains(t, userMessage(service.ErrSlotBusy), "бронирует")
	assert.False(t, isUnexpected(service.ErrInvalidCode))
	assert.True(t, isUnexpected(errors.New("connection refused")))
}
