package employee

import (
	"errors"
	"fmt"
	"time"
)

const (
	AvailabilityAvailable = "Available"
	AvailabilityBusy      = "Busy"
	AvailabilityOnLeave   = "On Leave"
)

var Availabilities = []string{AvailabilityAvailable, AvailabilityBusy, AvailabilityOnLeave}

var (
	ErrNotFound            = errors.New("employee not found")
	ErrDuplicateEmail      = errors.New("email already in use")
	ErrInvalidRole         = errors.New("invalid role")
	ErrInvalidAvailability = errors.New("invalid availability")
	ErrAccountNeedsEmail   = errors.New("email is required to create a login account")
)

type Employee struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	Position     string     `json:"position"`
	Designation  string     `json:"designation"`
	Department   string     `json:"department"`
	PhoneNumber  string     `json:"phoneNumber"`
	Availability string     `json:"availability"`
	HireDate     *time.Time `json:"hireDate,omitempty"`
	Role         string     `json:"role"`
	HasAccount   bool       `json:"hasAccount"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type NewEmployee struct {
	Name         string
	Email        string
	Position     string
	Designation  string
	Department   string
	PhoneNumber  string
	Availability string
	HireDate     *time.Time
	Role         string
	Password     string
}

type Filter struct {
	Department   string
	Availability string
	Role         string
	Search       string
}

type ListResult struct {
	Items []Employee `json:"items"`
	Total int        `json:"total"`
}

// FormatCode renders the sequence number as a public employee id: E001,
// E002, ... E1000 once three digits run out.
func FormatCode(seq int64) string {
	return fmt.Sprintf("E%03d", seq)
}

func ValidAvailability(value string) bool {
	for _, a := range Availabilities {
		if a == value {
			return true
		}
	}
	return false
}
