package exit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/platform/db/dbtest"
)

func TestStoreDecideIsFinal(t *testing.T) {
	pool := dbtest.Open(t)
	store := NewStore(pool)
	ctx := context.Background()
	employeeID := dbtest.Employee(t, pool, "Exit Final")

	x, err := store.Create(ctx, Exit{
		EmployeeID: employeeID, ExitType: TypeResignation, ExitDate: time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		Reason: "relocating", RemainingSalary: 1500, ProvidentFund: 450,
	}, &File{Name: "letter.pdf", ContentType: "application/pdf", Data: []byte("sealed")})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, x.ApprovalStatus)
	assert.True(t, x.HasDocument)

	ok, err := store.Decide(ctx, x.ID, StatusApproved, "")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = store.Decide(ctx, x.ID, StatusRejected, "")
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := store.Get(ctx, x.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, stored.ApprovalStatus)
	assert.InDelta(t, 1500, stored.RemainingSalary, 0.001)

	doc, err := store.Document(ctx, x.ID)
	require.NoError(t, err)
	assert.Equal(t, "letter.pdf", doc.Name)
	assert.Equal(t, []byte("sealed"), doc.Data)

	listed, err := store.List(ctx, employeeID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, x.ID, listed[0].ID)
}

func TestStoreUnknownExit(t *testing.T) {
	pool := dbtest.Open(t)
	store := NewStore(pool)

	_, err := store.Get(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
	ok, err := store.Decide(context.Background(), "00000000-0000-0000-0000-000000000000", StatusApproved, "")
	require.NoError(t, err)
	assert.False(t, ok)
}
