package exit

import (
	"math"
	"slices"
	"time"
)

func ValidType(exitType string) bool {
	return slices.Contains(Types, exitType)
}

func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// RemainingSalary prorates the monthly net salary up to and including the
// exit day.
func RemainingSalary(netSalary float64, exitDate time.Time) float64 {
	if netSalary <= 0 {
		return 0
	}
	prorated := netSalary * float64(exitDate.Day()) / float64(DaysInMonth(exitDate))
	return math.Round(prorated*100) / 100
}
