package exit

import (
	"errors"
	"time"
)

const (
	TypeResignation = "Resignation"
	TypeRetirement  = "Retirement"
	TypeDismissal   = "Dismissal"

	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

var Types = []string{TypeResignation, TypeRetirement, TypeDismissal}

var (
	ErrNotFound           = errors.New("exit record not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrInvalidType        = errors.New("exit type must be Resignation, Retirement or Dismissal")
	ErrDateRequired       = errors.New("exit date is required")
	ErrDocumentNotAllowed = errors.New("a resignation file is only accepted for resignations")
	ErrNoDocument         = errors.New("exit record has no document")
	ErrInvalidDecision    = errors.New("approval status must be Approved or Rejected")
	ErrInvalidState       = errors.New("exit record has already been decided")
)

type Exit struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employeeId"`
	EmployeeName    string    `json:"employeeName,omitempty"`
	ExitType        string    `json:"exitType"`
	ExitDate        time.Time `json:"exitDate"`
	Reason          string    `json:"reason"`
	ApprovalStatus  string    `json:"approvalStatus"`
	RemainingSalary float64   `json:"remainingSalary"`
	ProvidentFund   float64   `json:"providentFund"`
	DocumentName    string    `json:"documentName,omitempty"`
	HasDocument     bool      `json:"hasDocument"`
	CreatedAt       time.Time `json:"createdAt"`
}

type NewExit struct {
	EmployeeID string
	ExitType   string
	ExitDate   time.Time
	Reason     string
	Document   *File
}

type File struct {
	Name        string
	ContentType string
	Data        []byte
}
