package loan

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/platform/db/dbtest"
)

func TestStoreRepayUntilPaid(t *testing.T) {
	pool := dbtest.Open(t)
	store := NewStore(pool)
	ctx := context.Background()
	employeeID := dbtest.Employee(t, pool, "Loan Repay")

	l, err := store.Create(ctx, Loan{EmployeeID: employeeID, LoanAmount: 1000, MonthlyInstallment: 400, Reason: "car"})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, l.Status)
	assert.InDelta(t, 1000, l.RemainingBalance, 0.001)

	_, err = store.Repay(ctx, l.ID, 400, "")
	assert.ErrorIs(t, err, ErrInvalidState)

	ok, err := store.Decide(ctx, l.ID, StatusApproved, "")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = store.Decide(ctx, l.ID, StatusRejected, "")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Repay(ctx, l.ID, 400, "")
	require.NoError(t, err)
	_, err = store.Repay(ctx, l.ID, 700, "")
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = store.Repay(ctx, l.ID, 600, "")
	require.NoError(t, err)

	paid, err := store.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, paid.Status)
	assert.InDelta(t, 0, paid.RemainingBalance, 0.001)
}

func TestStoreConcurrentRepaymentsCannotOverdraw(t *testing.T) {
	pool := dbtest.Open(t)
	store := NewStore(pool)
	ctx := context.Background()
	employeeID := dbtest.Employee(t, pool, "Loan Race")

	l, err := store.Create(ctx, Loan{EmployeeID: employeeID, LoanAmount: 500, MonthlyInstallment: 500})
	require.NoError(t, err)
	ok, err := store.Decide(ctx, l.ID, StatusApproved, "")
	require.NoError(t, err)
	require.True(t, ok)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = store.Repay(context.Background(), l.ID, 500, "")
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrInvalidState)
		}
	}
	assert.Equal(t, 1, succeeded)

	stored, err := store.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, stored.Status)
	assert.InDelta(t, 0, stored.RemainingBalance, 0.001)
}
