package loan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNew(t *testing.T) {
	assert.NoError(t, ValidateNew(NewLoan{LoanAmount: 1000, MonthlyInstallment: 100}))
	assert.NoError(t, ValidateNew(NewLoan{LoanAmount: 1000, MonthlyInstallment: 1000}))
	assert.ErrorIs(t, ValidateNew(NewLoan{LoanAmount: 0, MonthlyInstallment: 100}), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateNew(NewLoan{LoanAmount: 1000, MonthlyInstallment: 0}), ErrInvalidInstallment)
	assert.ErrorIs(t, ValidateNew(NewLoan{LoanAmount: 1000, MonthlyInstallment: 1500}), ErrInvalidInstallment)
}

func TestApplyRepayment(t *testing.T) {
	l := Loan{Status: StatusApproved, MonthlyInstallment: 400, RemainingBalance: 1000}

	taken, next, err := ApplyRepayment(l, 0)
	require.NoError(t, err)
	assert.Equal(t, 400.0, taken)
	assert.Equal(t, 600.0, next.RemainingBalance)
	assert.Equal(t, StatusApproved, next.Status)

	taken, next, err = ApplyRepayment(next, 5000)
	require.NoError(t, err)
	assert.Equal(t, 600.0, taken, "capped at the remaining balance")
	assert.Zero(t, next.RemainingBalance)
	assert.Equal(t, StatusPaid, next.Status)
}

func TestApplyRepaymentRequiresApproval(t *testing.T) {
	for _, status := range []string{StatusPending, StatusRejected, StatusPaid} {
		_, _, err := ApplyRepayment(Loan{Status: status, RemainingBalance: 10, MonthlyInstallment: 5}, 0)
		assert.ErrorIs(t, err, ErrInvalidState, status)
	}

	_, _, err := ApplyRepayment(Loan{Status: StatusApproved, RemainingBalance: 10}, -1)
	assert.ErrorIs(t, err, ErrInvalidRepayment)
}
