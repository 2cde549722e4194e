package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalHours(t *testing.T) {
	hours, err := TotalHours("09:00", "17:30")
	require.NoError(t, err)
	assert.Equal(t, 8.5, hours)

	hours, err = TotalHours("09:10", "10:00")
	require.NoError(t, err)
	assert.Equal(t, 0.83, hours)

	hours, err = TotalHours("08:00:00", "12:00:00")
	require.NoError(t, err)
	assert.Equal(t, 4.0, hours)
}

func TestTotalHoursRejectsBadInput(t *testing.T) {
	_, err := TotalHours("17:00", "09:00")
	assert.ErrorIs(t, err, ErrCheckOutBefore)

	_, err = TotalHours("09:00", "09:00")
	assert.ErrorIs(t, err, ErrCheckOutBefore)

	for _, bad := range []string{"", "9", "24:00", "12:60", "ab:cd", "09:00:zz", "09:00:60", "09:00:00:00"} {
		_, err = TotalHours(bad, "18:00")
		assert.ErrorIs(t, err, ErrInvalidTime, "input %q", bad)
	}
}

func TestWindow(t *testing.T) {
	wednesday := time.Date(2026, time.March, 11, 15, 0, 0, 0, time.UTC)

	from, to, err := Window(PeriodWeekly, wednesday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC), to)

	sunday := time.Date(2026, time.March, 15, 8, 0, 0, 0, time.UTC)
	from, _, err = Window(PeriodWeekly, sunday)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, from.Weekday())
	assert.Equal(t, 9, from.Day())

	from, to, err = Window(PeriodMonthly, wednesday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), to)

	_, _, err = Window("yearly", wednesday)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestParseClockSeconds(t *testing.T) {
	minutes, err := ParseClock("09:30:45")
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	_, err = ParseClock("09:30:zz")
	assert.ErrorIs(t, err, ErrInvalidTime)
}
