package leave

import (
	"errors"
	"time"
)

const (
	TypeSick      = "Sick Leave"
	TypeCasual    = "Casual Leave"
	TypePaid      = "Paid Leave"
	TypeMaternity = "Maternity Leave"

	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"

	ApproverHR = "hr"
	ApproverPM = "pm"
)

var Types = []string{TypeSick, TypeCasual, TypePaid, TypeMaternity}

var (
	ErrNotFound         = errors.New("leave request not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidType      = errors.New("unknown leave type")
	ErrInvalidRange     = errors.New("end date before start date")
	ErrInvalidDecision  = errors.New("status must be Approved or Rejected")
	ErrReasonRequired   = errors.New("a rejection reason is required")
	ErrInvalidState     = errors.New("this approval has already been decided")
)

type Request struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employeeId"`
	EmployeeName    string    `json:"employeeName,omitempty"`
	LeaveType       string    `json:"leaveType"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	Days            float64   `json:"days"`
	Reason          string    `json:"reason"`
	Status          string    `json:"status"`
	HRApproval      string    `json:"hrApproval"`
	PMApproval      string    `json:"projectManagerApproval"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type NewRequest struct {
	EmployeeID string
	LeaveType  string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
}

type Filter struct {
	EmployeeID string
	Status     string
}

type RequestListResult struct {
	Items []Request `json:"items"`
	Total int       `json:"total"`
}

type Balance struct {
	EmployeeID  string  `json:"employeeId"`
	Year        int     `json:"year"`
	Entitlement float64 `json:"entitlement"`
	Used        float64 `json:"used"`
	Pending     float64 `json:"pending"`
	Remaining   float64 `json:"remaining"`
}
