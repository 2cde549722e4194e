package loan

import (
	"errors"
	"time"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
	StatusPaid     = "Paid"
)

var (
	ErrNotFound           = errors.New("loan not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrInvalidAmount      = errors.New("loan amount must be greater than zero")
	ErrInvalidInstallment = errors.New("monthly installment must be greater than zero and not exceed the loan amount")
	ErrInvalidDecision    = errors.New("status must be Approved or Rejected")
	ErrInvalidState       = errors.New("loan is not in a state that allows this action")
	ErrInvalidRepayment   = errors.New("repayment amount must be greater than zero")
)

type Loan struct {
	ID                 string     `json:"id"`
	EmployeeID         string     `json:"employeeId"`
	EmployeeName       string     `json:"employeeName,omitempty"`
	LoanAmount         float64    `json:"loanAmount"`
	MonthlyInstallment float64    `json:"monthlyInstallment"`
	RemainingBalance   float64    `json:"remainingBalance"`
	Reason             string     `json:"reason"`
	Status             string     `json:"status"`
	DecidedAt          *time.Time `json:"decidedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

type NewLoan struct {
	EmployeeID         string
	LoanAmount         float64
	MonthlyInstallment float64
	Reason             string
}

type Repayment struct {
	ID        string    `json:"id"`
	LoanID    string    `json:"loanId"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

type RepaymentResult struct {
	Loan      Loan      `json:"loan"`
	Repayment Repayment `json:"repayment"`
}
