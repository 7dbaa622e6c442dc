package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in   string
		want ClockTime
	}{
		{"00:00", ClockTime{}},
		{"07:05", ClockTime{Hour: 7, Minute: 5}},
		{"23:59", ClockTime{Hour: 23, Minute: 59}},
		{"19:00:00", ClockTime{Hour: 19}},
		{" 06:30:59 ", ClockTime{Hour: 6, Minute: 30}},
	}

	for _, tt := range tests {
		got, err := ParseClockTime(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseClockTime_Invalid(t *testing.T) {
	for _, in := range []string{"", "7:00", "24:00", "12:60", "12:00:60", "ab:cd", "12-00", "12:00:00:00", "-1:00"} {
		_, err := ParseClockTime(in)
		assert.ErrorIs(t, err, ErrInvalidConfiguration, in)
	}
}

func TestClockTimeString(t *testing.T) {
	assert.Equal(t, "07:05", ClockTime{Hour: 7, Minute: 5}.String())
	assert.Equal(t, 425, ClockTime{Hour: 7, Minute: 5}.Minutes())
}

func TestShiftSpanDuration(t *testing.T) {
	assert.Equal(t, 480, ShiftSpan{Start: ClockTime{Hour: 22}, End: ClockTime{Hour: 6}}.DurationMinutes())
	assert.Equal(t, 0, ShiftSpan{Start: ClockTime{Hour: 12}, End: ClockTime{Hour: 12}}.DurationMinutes())
	assert.Equal(t, 1440, ShiftSpan{Start: ClockTime{Hour: 12}, End: ClockTime{Hour: 12}, Days: 1}.DurationMinutes())
	assert.Equal(t, 60, ShiftSpan{Start: ClockTime{Hour: 12}, End: ClockTime{Hour: 13}}.DurationMinutes())
}
