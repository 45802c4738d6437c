package keyboard

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Grid(t *testing.T) {
	buttons := make([]models.InlineKeyboardButton, 0)
	for _, label := range []string{"08:00", "08:30", "09:00", "09:30", "10:00"} {
		buttons = append(buttons, Button(label, "x:"+label))
	}

	markup := NewBuilder().Grid(buttons, 4).Row(Button("Назад", "back")).Build()

	require.Len(t, markup.InlineKeyboard, 3)
	assert.Len(t, markup.InlineKeyboard[0], 4)
	assert.Len(t, markup.InlineKeyboard[1], 1)
	assert.Equal(t, "x:10:00", markup.InlineKeyboard[1][0].CallbackData)
	assert.Equal(t, "back", markup.InlineKeyboard[2][0].CallbackData)
}

func TestBuilder_EmptyRowsSkipped(t *testing.T) {
	b := NewBuilder().Row().Grid(nil, 3)
	assert.Equal(t, 0, b.Len())
	assert.NotNil(t, b.Build().InlineKeyboard)
}
