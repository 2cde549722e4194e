package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/auth"
)

type fakeStore struct {
	requests   map[string]Request
	saveCalls  int
	approved   float64
	pendingSum float64
}

func (f *fakeStore) EmployeeExists(_ context.Context, id string) (bool, error) {
	return id == "E003", nil
}

func (f *fakeStore) CreateRequest(_ context.Context, req Request) (Request, error) {
	req.ID = "new"
	req.Status, req.HRApproval, req.PMApproval = StatusPending, StatusPending, StatusPending
	req.EmployeeName = "Omar"
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeStore) GetRequest(_ context.Context, id string) (Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return Request{}, ErrNotFound
	}
	return req, nil
}

func (f *fakeStore) ListRequests(context.Context, Filter, int, int) (RequestListResult, error) {
	return RequestListResult{}, nil
}

func (f *fakeStore) SaveDecision(_ context.Context, id, approver, status, reason, _ string) (Request, Request, error) {
	f.saveCalls++
	current, ok := f.requests[id]
	if !ok {
		return Request{}, Request{}, ErrNotFound
	}
	next, err := Decide(current, approver, status, reason)
	if err != nil {
		return Request{}, Request{}, err
	}
	f.requests[id] = next
	return current, next, nil
}

func (f *fakeStore) DaysByStatus(context.Context, string, int) (float64, float64, error) {
	return f.approved, f.pendingSum, nil
}

type recordingNotifier struct {
	direct []string
	roles  []string
}

func (r *recordingNotifier) Notify(_ context.Context, employeeID, _, _, _ string) {
	r.direct = append(r.direct, employeeID)
}

func (r *recordingNotifier) NotifyRole(_ context.Context, role, _, _, _ string) {
	r.roles = append(r.roles, role)
}

func newStore() *fakeStore {
	return &fakeStore{requests: map[string]Request{
		"r1": {ID: "r1", EmployeeID: "E003", LeaveType: TypeSick, Status: StatusPending, HRApproval: StatusPending, PMApproval: StatusPending},
	}}
}

func TestCreateRequest(t *testing.T) {
	store := newStore()
	notifier := &recordingNotifier{}
	svc := NewService(store, notifier, 20)

	start := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	req, err := svc.CreateRequest(context.Background(), NewRequest{EmployeeID: "E003", LeaveType: TypeCasual, StartDate: start, EndDate: start.AddDate(0, 0, 2)})
	require.NoError(t, err)
	assert.Equal(t, 3.0, req.Days)
	assert.Equal(t, []string{auth.RoleHRManager, auth.RoleProjectManager}, notifier.roles)

	_, err = svc.CreateRequest(context.Background(), NewRequest{EmployeeID: "E003", LeaveType: "Vacation", StartDate: start, EndDate: start})
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = svc.CreateRequest(context.Background(), NewRequest{EmployeeID: "E999", LeaveType: TypeSick, StartDate: start, EndDate: start})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestPMRejectionWithoutReasonLeavesStoreUntouched(t *testing.T) {
	store := newStore()
	svc := NewService(store, nil, 20)

	_, err := svc.Decide(context.Background(), auth.UserContext{UserID: "pm"}, "r1", ApproverPM, StatusRejected, "")
	assert.ErrorIs(t, err, ErrReasonRequired)
	assert.Zero(t, store.saveCalls)
	assert.Equal(t, StatusPending, store.requests["r1"].PMApproval)
}

func TestDecideReturnsUpdatedRecord(t *testing.T) {
	store := newStore()
	notifier := &recordingNotifier{}
	svc := NewService(store, notifier, 20)

	out, err := svc.Decide(context.Background(), auth.UserContext{UserID: "hr"}, "r1", ApproverHR, StatusRejected, "")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, out.HRApproval)
	assert.Equal(t, StatusRejected, out.Status)
	assert.Equal(t, []string{"E003"}, notifier.direct)
}

func TestDecisionIsFinal(t *testing.T) {
	store := newStore()
	svc := NewService(store, nil, 20)

	_, err := svc.Decide(context.Background(), auth.UserContext{UserID: "hr"}, "r1", ApproverHR, StatusApproved, "")
	require.NoError(t, err)
	_, err = svc.Decide(context.Background(), auth.UserContext{UserID: "hr"}, "r1", ApproverHR, StatusRejected, "")
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, StatusApproved, store.requests["r1"].HRApproval)
}

func TestSecondApproverKeepsFirstDecision(t *testing.T) {
	store := newStore()
	notifier := &recordingNotifier{}
	svc := NewService(store, notifier, 20)

	first, err := svc.Decide(context.Background(), auth.UserContext{UserID: "hr"}, "r1", ApproverHR, StatusApproved, "")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, first.Status)
	assert.Empty(t, notifier.direct)

	out, err := svc.Decide(context.Background(), auth.UserContext{UserID: "pm"}, "r1", ApproverPM, StatusApproved, "")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, out.HRApproval)
	assert.Equal(t, StatusApproved, out.PMApproval)
	assert.Equal(t, StatusApproved, out.Status)
	assert.Equal(t, []string{"E003"}, notifier.direct)
}

func TestBalance(t *testing.T) {
	store := newStore()
	store.approved, store.pendingSum = 5, 2

	out, err := NewService(store, nil, 20).Balance(context.Background(), "E003", 2026)
	require.NoError(t, err)
	assert.Equal(t, Balance{EmployeeID: "E003", Year: 2026, Entitlement: 20, Used: 5, Pending: 2, Remaining: 15}, out)
}
