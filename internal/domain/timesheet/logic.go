package timesheet

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseClock converts "HH:MM" or "HH:MM:SS" to minutes after midnight.
// Seconds are validated and then dropped.
func ParseClock(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, ErrInvalidTime
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, ErrInvalidTime
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, ErrInvalidTime
	}
	if len(parts) == 3 {
		seconds, err := strconv.Atoi(parts[2])
		if err != nil || seconds < 0 || seconds > 59 {
			return 0, ErrInvalidTime
		}
	}
	return hours*60 + minutes, nil
}

// TotalHours is the worked time between check-in and check-out, to two
// decimals.
func TotalHours(checkIn, checkOut string) (float64, error) {
	in, err := ParseClock(checkIn)
	if err != nil {
		return 0, err
	}
	out, err := ParseClock(checkOut)
	if err != nil {
		return 0, err
	}
	if out <= in {
		return 0, ErrCheckOutBefore
	}
	return math.Round(float64(out-in)/60*100) / 100, nil
}

// Window returns the [from, to) range of the reporting period containing
// now. Weeks start on Monday.
func Window(period string, now time.Time) (time.Time, time.Time, error) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch period {
	case PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		from := day.AddDate(0, 0, -offset)
		return from, from.AddDate(0, 0, 7), nil
	case PeriodMonthly:
		from := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 1, 0), nil
	}
	return time.Time{}, time.Time{}, ErrInvalidPeriod
}
