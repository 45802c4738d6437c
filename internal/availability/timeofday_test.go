package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	valid := map[string]int{
		"00:00":    0,
		"09:00":    540,
		"17:00:00": 1020,
		"23:59:59": 1439,
		" 08:30 ":  510,
	}
	for input, want := range valid {
		got, err := ParseTimeOfDay(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	for _, input := range []string{"", "9:00", "24:00", "12:60", "aa:bb", "12", "12:00:00:00"} {
		_, err := ParseTimeOfDay(input)
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay, input)
	}
}

func TestNormalizeTimeOfDay(t *testing.T) {
	got, err := NormalizeTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30:00", got)

	got, err = NormalizeTimeOfDay("09:30:00")
	require.NoError(t, err)
	assert.Equal(t, "09:30:00", got)

	_, err = NormalizeTimeOfDay("nope")
	assert.Error(t, err)

	_, err = NormalizeTimeOfDay("09:30:15")
	assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
}
