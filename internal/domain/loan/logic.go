package loan

import "math"

func ValidateNew(input NewLoan) error {
	if input.LoanAmount <= 0 {
		return ErrInvalidAmount
	}
	if input.MonthlyInstallment <= 0 || input.MonthlyInstallment > input.LoanAmount {
		return ErrInvalidInstallment
	}
	return nil
}

// ApplyRepayment returns the amount actually taken and the loan after it.
// A zero amount means one monthly installment; the balance never goes
// below zero and a cleared loan becomes Paid.
func ApplyRepayment(l Loan, amount float64) (float64, Loan, error) {
	if l.Status != StatusApproved {
		return 0, l, ErrInvalidState
	}
	if amount < 0 {
		return 0, l, ErrInvalidRepayment
	}
	if amount == 0 {
		amount = l.MonthlyInstallment
	}
	amount = math.Min(round2(amount), l.RemainingBalance)
	if amount <= 0 {
		return 0, l, ErrInvalidRepayment
	}
	l.RemainingBalance = round2(l.RemainingBalance - amount)
	if l.RemainingBalance <= 0 {
		l.RemainingBalance = 0
		l.Status = StatusPaid
	}
	return amount, l, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
