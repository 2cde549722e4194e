package leavehandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/leave"
	"hrms/internal/platform/authz"
	"hrms/internal/transport/http/middleware"
)

type fakeStore struct {
	requests  map[string]leave.Request
	saveCalls int
	created   []leave.Request
}

func (f *fakeStore) EmployeeExists(_ context.Context, id string) (bool, error) {
	return id == "E003", nil
}

func (f *fakeStore) CreateRequest(_ context.Context, req leave.Request) (leave.Request, error) {
	req.ID = "lr-new"
	req.Status, req.HRApproval, req.PMApproval = leave.StatusPending, leave.StatusPending, leave.StatusPending
	f.created = append(f.created, req)
	return req, nil
}

func (f *fakeStore) GetRequest(_ context.Context, id string) (leave.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrNotFound
	}
	return req, nil
}

func (f *fakeStore) ListRequests(_ context.Context, filter leave.Filter, _, _ int) (leave.RequestListResult, error) {
	var out leave.RequestListResult
	for _, req := range f.requests {
		if filter.EmployeeID == "" || req.EmployeeID == filter.EmployeeID {
			out.Items = append(out.Items, req)
		}
	}
	out.Total = len(out.Items)
	return out, nil
}

func (f *fakeStore) SaveDecision(_ context.Context, id, approver, status, reason, _ string) (leave.Request, leave.Request, error) {
	f.saveCalls++
	current, ok := f.requests[id]
	if !ok {
		return leave.Request{}, leave.Request{}, leave.ErrNotFound
	}
	next, err := leave.Decide(current, approver, status, reason)
	if err != nil {
		return leave.Request{}, leave.Request{}, err
	}
	f.requests[id] = next
	return current, next, nil
}

func (f *fakeStore) DaysByStatus(context.Context, string, int) (float64, float64, error) {
	return 4, 1, nil
}

var (
	hrUser       = auth.UserContext{UserID: "u1", EmployeeID: "E001", RoleName: auth.RoleHRManager}
	pmUser       = auth.UserContext{UserID: "u2", EmployeeID: "E002", RoleName: auth.RoleProjectManager}
	employeeUser = auth.UserContext{UserID: "u3", EmployeeID: "E003", RoleName: auth.RoleEmployee}
)

func newRouter(t *testing.T) (*chi.Mux, *fakeStore) {
	t.Helper()
	enforcer, err := authz.New(auth.RolePermissions)
	require.NoError(t, err)
	store := &fakeStore{requests: map[string]leave.Request{
		"lr1": {
			ID: "lr1", EmployeeID: "E003", LeaveType: leave.TypeSick,
			StartDate: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
			Days: 2, Status: leave.StatusPending, HRApproval: leave.StatusPending, PMApproval: leave.StatusPending,
		},
	}}
	h := NewHandler(leave.NewService(store, nil, 20), enforcer, nil)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r, store
}

func do(r http.Handler, user auth.UserContext, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithUser(req.Context(), user))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPMRejectionWithoutReasonIsRefused(t *testing.T) {
	r, store := newRouter(t)

	rec := do(r, pmUser, http.MethodPut, "/leaves/requests/lr1/pm-approval", `{"status":"Rejected","rejectionReason":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"reason_required"`)
	assert.Zero(t, store.saveCalls)
	assert.Equal(t, leave.StatusPending, store.requests["lr1"].PMApproval)
}

func TestPMRejectionReturnsUpdatedRecord(t *testing.T) {
	r, store := newRouter(t)

	rec := do(r, pmUser, http.MethodPut, "/leaves/requests/lr1/pm-approval", `{"status":"Rejected","rejectionReason":"Release week"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"projectManagerApproval":"Rejected"`)
	assert.Contains(t, rec.Body.String(), `"status":"Rejected"`)
	assert.Contains(t, rec.Body.String(), `"rejectionReason":"Release week"`)
	assert.Equal(t, 1, store.saveCalls)
}

func TestHRApprovalWithoutReason(t *testing.T) {
	r, _ := newRouter(t)

	rec := do(r, hrUser, http.MethodPut, "/leaves/requests/lr1/hr-approval", `{"status":"Rejected"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"hrApproval":"Rejected"`)

	rec = do(r, hrUser, http.MethodPut, "/leaves/requests/lr1/hr-approval", `{"status":"Approved"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestApprovalEndpointsAreRoleBound(t *testing.T) {
	r, store := newRouter(t)

	assert.Equal(t, http.StatusForbidden, do(r, hrUser, http.MethodPut, "/leaves/requests/lr1/pm-approval", `{"status":"Approved"}`).Code)
	assert.Equal(t, http.StatusForbidden, do(r, pmUser, http.MethodPut, "/leaves/requests/lr1/hr-approval", `{"status":"Approved"}`).Code)
	assert.Equal(t, http.StatusForbidden, do(r, employeeUser, http.MethodPut, "/leaves/requests/lr1/hr-approval", `{"status":"Approved"}`).Code)
	assert.Zero(t, store.saveCalls)
}

func TestEmployeeRequestsOwnLeave(t *testing.T) {
	r, store := newRouter(t)

	rec := do(r, employeeUser, http.MethodPost, "/leaves/request", `{"leaveType":"Casual Leave","startDate":"2026-03-02","endDate":"2026-03-04","reason":"family"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, store.created, 1)
	assert.Equal(t, "E003", store.created[0].EmployeeID)
	assert.Equal(t, 3.0, store.created[0].Days)

	rec = do(r, employeeUser, http.MethodPost, "/leaves/request", `{"employeeId":"E001","leaveType":"Casual Leave","startDate":"2026-03-02","endDate":"2026-03-04"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(r, employeeUser, http.MethodPost, "/leaves/request", `{"leaveType":"Holiday","startDate":"2026-03-04","endDate":"2026-03-02"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"leaveType"`)
	assert.Contains(t, rec.Body.String(), `"field":"endDate"`)
}

func TestBalanceScopedToSelf(t *testing.T) {
	r, _ := newRouter(t)

	rec := do(r, employeeUser, http.MethodGet, "/leaves/balance/E003?year=2026", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"remaining":16`)

	assert.Equal(t, http.StatusForbidden, do(r, employeeUser, http.MethodGet, "/leaves/balance/E001", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, hrUser, http.MethodGet, "/leaves/balance/E003?year=abc", "").Code)
}

func TestBothApprovalsAreKept(t *testing.T) {
	r, store := newRouter(t)

	require.Equal(t, http.StatusOK, do(r, hrUser, http.MethodPut, "/leaves/requests/lr1/hr-approval", `{"status":"Approved"}`).Code)
	rec := do(r, pmUser, http.MethodPut, "/leaves/requests/lr1/pm-approval", `{"status":"Approved"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status":"Approved"`)
	assert.Equal(t, leave.StatusApproved, store.requests["lr1"].HRApproval)
	assert.Equal(t, leave.StatusApproved, store.requests["lr1"].PMApproval)
}
