package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestParseSlotInterval(t *testing.T) {
	tests := []struct {
		name string
		raw  *string
		want SlotInterval
	}{
		{"nil uses default", nil, 30},
		{"empty uses default", strPtr(""), 30},
		{"spaces only", strPtr("   "), 30},
		{"hours short", strPtr("1h"), 60},
		{"hora", strPtr("1hora"), 60},
		{"horas with space", strPtr("2 horas"), 120},
		{"hrs", strPtr("3hrs"), 180},
		{"plain number", strPtr("90"), 90},
		{"minutes suffix", strPtr("45min"), 45},
		{"minutes word", strPtr("15 minutes"), 15},
		{"uppercase and padding", strPtr("  20 MIN "), 20},
		{"zero falls back", strPtr("0"), 30},
		{"zero hours falls back", strPtr("0h"), 30},
		{"garbage falls back", strPtr("abc"), 30},
		{"fraction falls back", strPtr("1.5h"), 30},
		{"negative falls back", strPtr("-5"), 30},
		{"signed integer parses", strPtr("+45"), 45},
		{"hours capped at a day", strPtr("48h"), 1440},
		{"huge hours do not overflow", strPtr("307445734561825861h"), 1440},
		{"minutes capped at a day", strPtr("5000"), 1440},
		{"huge minutes capped", strPtr("99999999999 min"), 1440},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSlotInterval(tt.raw))
		})
	}
}

func TestSlotInterval_RequiredSlots(t *testing.T) {
	assert.Equal(t, 1, SlotInterval(30).RequiredSlots(0))
	assert.Equal(t, 1, SlotInterval(30).RequiredSlots(30))
	assert.Equal(t, 2, SlotInterval(30).RequiredSlots(31))
	assert.Equal(t, 3, SlotInterval(30).RequiredSlots(90))
	assert.Equal(t, 1, SlotInterval(60).RequiredSlots(45))
	assert.Equal(t, 2, SlotInterval(45).RequiredSlots(60))
}

func TestSlotInterval_MinutesNeverZero(t *testing.T) {
	assert.Equal(t, 30, SlotInterval(0).Minutes())
	assert.Equal(t, 30, SlotInterval(-10).Minutes())
	assert.Equal(t, 15, SlotInterval(15).Minutes())
}
