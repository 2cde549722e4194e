package timesheet

import (
	"errors"
	"time"
)

const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

var (
	ErrNotFound         = errors.New("timesheet not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidTime      = errors.New("times must use HH:MM")
	ErrCheckOutBefore   = errors.New("check-out time must be after check-in time")
	ErrInvalidPeriod    = errors.New("period must be weekly or monthly")
)

type Entry struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName,omitempty"`
	Date         time.Time `json:"date"`
	CheckInTime  string    `json:"checkInTime"`
	CheckOutTime string    `json:"checkOutTime"`
	TotalHours   float64   `json:"totalHours"`
	IsShortLeave bool      `json:"isShortLeave"`
	CreatedAt    time.Time `json:"createdAt"`
}

type NewEntry struct {
	EmployeeID   string
	Date         time.Time
	CheckInTime  string
	CheckOutTime string
}

// Overall is one employee's hours within a reporting window.
type Overall struct {
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	TotalHours   float64 `json:"totalHours"`
	DaysWorked   int     `json:"daysWorked"`
	ShortLeaves  int     `json:"shortLeaves"`
}

type OverallResult struct {
	Period    string    `json:"period"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Employees []Overall `json:"employees"`
}
