package exit

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/salary"
)

type fakeSalaries struct {
	latest *salary.Salary
	pf     float64
}

func (f fakeSalaries) Latest(context.Context, string) (salary.Salary, error) {
	if f.latest == nil {
		return salary.Salary{}, salary.ErrNotFound
	}
	return *f.latest, nil
}

func (f fakeSalaries) ProvidentFundTotal(context.Context, string) (float64, error) { return f.pf, nil }

type xorSealer struct{}

func (xorSealer) Seal(p []byte) ([]byte, error) { return xor(p), nil }
func (xorSealer) Open(p []byte) ([]byte, error) { return xor(p), nil }

func xor(p []byte) []byte {
	out := make([]byte, len(p))
	for i, b := range p {
		out[i] = b ^ 0x5a
	}
	return out
}

type fakeStore struct {
	exits     map[string]Exit
	documents map[string]File
}

func newStore() *fakeStore {
	return &fakeStore{exits: map[string]Exit{}, documents: map[string]File{}}
}

func (f *fakeStore) EmployeeExists(_ context.Context, id string) (bool, error) {
	return id == "E010", nil
}

func (f *fakeStore) Create(_ context.Context, x Exit, document *File) (Exit, error) {
	x.ID, x.ApprovalStatus = "x1", StatusPending
	if document != nil {
		x.HasDocument, x.DocumentName = true, document.Name
		f.documents[x.ID] = *document
	}
	f.exits[x.ID] = x
	return x, nil
}

func (f *fakeStore) Get(_ context.Context, id string) (Exit, error) {
	x, ok := f.exits[id]
	if !ok {
		return Exit{}, ErrNotFound
	}
	return x, nil
}

func (f *fakeStore) List(context.Context, string) ([]Exit, error) { return nil, nil }

func (f *fakeStore) Decide(_ context.Context, id, status, _ string) (bool, error) {
	x := f.exits[id]
	if x.ApprovalStatus != StatusPending {
		return false, nil
	}
	x.ApprovalStatus = status
	f.exits[id] = x
	return true, nil
}

func (f *fakeStore) Document(_ context.Context, id string) (File, error) { return f.documents[id], nil }

func TestCreateComputesSettlement(t *testing.T) {
	store := newStore()
	svc := NewService(store, fakeSalaries{latest: &salary.Salary{Breakdown: salary.Breakdown{NetSalary: 9000}}, pf: 1500}, xorSealer{}, nil)

	x, err := svc.Create(context.Background(), NewExit{
		EmployeeID: "E010", ExitType: TypeResignation, ExitDate: time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC),
		Document: &File{Name: "letter.pdf", ContentType: "application/pdf", Data: []byte("bye")},
	})
	require.NoError(t, err)
	assert.Equal(t, 3000.0, x.RemainingSalary)
	assert.Equal(t, 1500.0, x.ProvidentFund)
	assert.NotEqual(t, "bye", string(store.documents["x1"].Data))

	doc, err := svc.Document(context.Background(), "x1")
	require.NoError(t, err)
	assert.Equal(t, "bye", string(doc.Data))
}

func TestCreateWithoutSalaryHistory(t *testing.T) {
	svc := NewService(newStore(), fakeSalaries{}, xorSealer{}, nil)
	x, err := svc.Create(context.Background(), NewExit{EmployeeID: "E010", ExitType: TypeRetirement, ExitDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Zero(t, x.RemainingSalary)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newStore(), fakeSalaries{}, xorSealer{}, nil)
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), NewExit{EmployeeID: "E010", ExitType: "Layoff", ExitDate: date})
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = svc.Create(context.Background(), NewExit{EmployeeID: "E010", ExitType: TypeDismissal, ExitDate: date, Document: &File{Data: []byte("x")}})
	assert.ErrorIs(t, err, ErrDocumentNotAllowed)

	_, err = svc.Create(context.Background(), NewExit{EmployeeID: "E010", ExitType: TypeDismissal})
	assert.ErrorIs(t, err, ErrDateRequired)

	_, err = svc.Create(context.Background(), NewExit{EmployeeID: "E011", ExitType: TypeDismissal, ExitDate: date})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestDecideOnce(t *testing.T) {
	store := newStore()
	store.exits["x1"] = Exit{ID: "x1", EmployeeID: "E010", ExitType: TypeResignation, ApprovalStatus: StatusPending}
	svc := NewService(store, fakeSalaries{}, xorSealer{}, nil)

	x, err := svc.Decide(context.Background(), auth.UserContext{UserID: "hr"}, "x1", StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, x.ApprovalStatus)

	_, err = svc.Decide(context.Background(), auth.UserContext{}, "x1", StatusRejected)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.Decide(context.Background(), auth.UserContext{}, "x1", "Pending")
	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewService(newStore(), fakeSalaries{}, xorSealer{}, nil).WriteReport(&buf, Exit{EmployeeID: "E010", ExitType: TypeRetirement}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
