package exithandler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/exit"
	"hrms/internal/domain/salary"
	"hrms/internal/platform/authz"
	"hrms/internal/platform/crypto"
	"hrms/internal/transport/http/middleware"
)

type fakeSalaries struct{}

func (fakeSalaries) Latest(_ context.Context, employeeID string) (salary.Salary, error) {
	if employeeID != "E003" {
		return salary.Salary{}, salary.ErrNotFound
	}
	return salary.Salary{EmployeeID: employeeID, Breakdown: salary.Breakdown{NetSalary: 3000}}, nil
}

func (fakeSalaries) ProvidentFundTotal(context.Context, string) (float64, error) { return 450, nil }

type fakeStore struct {
	exits     map[string]exit.Exit
	documents map[string]exit.File
}

func (f *fakeStore) EmployeeExists(_ context.Context, id string) (bool, error) {
	return id == "E003" || id == "E004", nil
}

func (f *fakeStore) Create(_ context.Context, x exit.Exit, document *exit.File) (exit.Exit, error) {
	x.ID, x.ApprovalStatus = "x-new", exit.StatusPending
	if document != nil {
		x.HasDocument, x.DocumentName = true, document.Name
		f.documents[x.ID] = *document
	}
	f.exits[x.ID] = x
	return x, nil
}

func (f *fakeStore) Get(_ context.Context, id string) (exit.Exit, error) {
	x, ok := f.exits[id]
	if !ok {
		return exit.Exit{}, exit.ErrNotFound
	}
	return x, nil
}

func (f *fakeStore) List(_ context.Context, employeeID string) ([]exit.Exit, error) {
	var out []exit.Exit
	for _, x := range f.exits {
		if employeeID == "" || x.EmployeeID == employeeID {
			out = append(out, x)
		}
	}
	return out, nil
}

func (f *fakeStore) Decide(_ context.Context, id, status, _ string) (bool, error) {
	x := f.exits[id]
	if x.ApprovalStatus != exit.StatusPending {
		return false, nil
	}
	x.ApprovalStatus = status
	f.exits[id] = x
	return true, nil
}

func (f *fakeStore) Document(_ context.Context, id string) (exit.File, error) {
	if _, ok := f.exits[id]; !ok {
		return exit.File{}, exit.ErrNotFound
	}
	return f.documents[id], nil
}

var (
	hrUser       = auth.UserContext{UserID: "u1", EmployeeID: "E001", RoleName: auth.RoleHRManager}
	employeeUser = auth.UserContext{UserID: "u3", EmployeeID: "E003", RoleName: auth.RoleEmployee}
)

func newRouter(t *testing.T) (*chi.Mux, *fakeStore) {
	t.Helper()
	enforcer, err := authz.New(auth.RolePermissions)
	require.NoError(t, err)
	sealer, err := crypto.New(strings.Repeat("k!", 16))
	require.NoError(t, err)
	store := &fakeStore{
		exits: map[string]exit.Exit{
			"x4": {ID: "x4", EmployeeID: "E004", ExitType: exit.TypeRetirement, ApprovalStatus: exit.StatusPending},
		},
		documents: map[string]exit.File{},
	}
	h := NewHandler(exit.NewService(store, fakeSalaries{}, sealer, nil), enforcer, nil, 1<<20)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r, store
}

func multipartBody(t *testing.T, fields map[string]string, file string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != "" {
		fw, err := mw.CreateFormFile("resignationFile", "letter.txt")
		require.NoError(t, err)
		_, err = fw.Write([]byte(file))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func do(r http.Handler, user auth.UserContext, req *http.Request) *httptest.ResponseRecorder {
	req = req.WithContext(middleware.WithUser(req.Context(), user))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestProcessResignationWithDocument(t *testing.T) {
	r, store := newRouter(t)

	body, contentType := multipartBody(t, map[string]string{
		"exitType": "Resignation", "exitDate": "2026-04-15", "reason": "relocating",
	}, "I resign.")
	req := httptest.NewRequest(http.MethodPost, "/exits/process-exit", body)
	req.Header.Set("Content-Type", contentType)
	rec := do(r, employeeUser, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"remainingSalary":1500`)
	assert.Contains(t, rec.Body.String(), `"providentFund":450`)
	assert.Contains(t, rec.Body.String(), `"hasDocument":true`)
	assert.NotEqual(t, "I resign.", string(store.documents["x-new"].Data))

	rec = do(r, employeeUser, httptest.NewRequest(http.MethodGet, "/exits/x-new/document", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "I resign.", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "letter.txt")
}

func TestProcessExitRejectsDocumentForOtherTypes(t *testing.T) {
	r, store := newRouter(t)

	body, contentType := multipartBody(t, map[string]string{
		"employeeId": "E004", "exitType": "Dismissal", "exitDate": "2026-04-15",
	}, "memo")
	req := httptest.NewRequest(http.MethodPost, "/exits/process-exit", body)
	req.Header.Set("Content-Type", contentType)
	rec := do(r, hrUser, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"resignationFile"`)
	assert.Len(t, store.exits, 1)

	body, contentType = multipartBody(t, map[string]string{"employeeId": "E004", "exitType": "Layoff"}, "")
	req = httptest.NewRequest(http.MethodPost, "/exits/process-exit", body)
	req.Header.Set("Content-Type", contentType)
	rec = do(r, hrUser, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"exitType"`)
	assert.Contains(t, rec.Body.String(), `"field":"exitDate"`)
}

func TestExitVisibilityAndDecision(t *testing.T) {
	r, _ := newRouter(t)

	rec := do(r, employeeUser, httptest.NewRequest(http.MethodGet, "/exits", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"id":"x4"`)
	assert.Equal(t, http.StatusForbidden, do(r, employeeUser, httptest.NewRequest(http.MethodGet, "/exits/x4", nil)).Code)
	assert.Equal(t, http.StatusForbidden, do(r, employeeUser, httptest.NewRequest(http.MethodPatch, "/exits/x4/approve", strings.NewReader(`{"approvalStatus":"Approved"}`))).Code)

	rec = do(r, hrUser, httptest.NewRequest(http.MethodPatch, "/exits/x4/approve", strings.NewReader(`{"approvalStatus":"Approved"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"approvalStatus":"Approved"`)
	rec = do(r, hrUser, httptest.NewRequest(http.MethodPatch, "/exits/x4/approve", strings.NewReader(`{"approvalStatus":"Rejected"}`)))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(r, hrUser, httptest.NewRequest(http.MethodGet, "/exits/x4/document", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExitReportPDF(t *testing.T) {
	r, _ := newRouter(t)

	rec := do(r, hrUser, httptest.NewRequest(http.MethodGet, "/exits/report/x4", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "exit-report-e004.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}
