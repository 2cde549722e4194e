package authhandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/auth"
	"hrms/internal/transport/http/middleware"
)

type fakeStore struct {
	users   map[string]auth.User
	created int
	revoked int
}

func (s *fakeStore) FindActiveUserByEmail(_ context.Context, email string) (auth.User, error) {
	u, ok := s.users[email]
	if !ok {
		return auth.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (s *fakeStore) FindUserByID(context.Context, string) (auth.User, error) {
	return auth.User{}, pgx.ErrNoRows
}

func (s *fakeStore) CreateSession(context.Context, string, string, time.Time) error {
	s.created++
	return nil
}

func (s *fakeStore) SessionValid(context.Context, string, string) (bool, error) { return true, nil }

func (s *fakeStore) RevokeSession(context.Context, string, string) error {
	s.revoked++
	return nil
}

func (s *fakeStore) UpdateLastLogin(context.Context, string) error         { return nil }
func (s *fakeStore) UpdateMFASecret(context.Context, string, []byte) error { return nil }
func (s *fakeStore) SetMFAEnabled(context.Context, string, bool) error     { return nil }

type countingMetrics struct{ failed int }

func (m *countingMetrics) LoginFailed() { m.failed++ }

func passthrough(next http.Handler) http.Handler { return next }

func newRouter(t *testing.T) (*chi.Mux, *fakeStore, *countingMetrics) {
	t.Helper()
	hash, err := auth.HashPassword("Secret123")
	require.NoError(t, err)
	store := &fakeStore{users: map[string]auth.User{
		"hr@example.com": {ID: "u1", Email: "hr@example.com", PasswordHash: hash, RoleName: auth.RoleHRManager, EmployeeID: "E001", EmployeeName: "Amna"},
	}}
	metrics := &countingMetrics{}
	svc := auth.NewService(store, "test-secret", time.Hour, nil, nil)
	h := NewHandler(svc, nil, metrics, true)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Auth(svc))
	h.RegisterRoutes(r, passthrough)
	return r, store, metrics
}

func post(r http.Handler, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestLoginSetsSessionCookie(t *testing.T) {
	r, store, metrics := newRouter(t)

	rec := post(r, "/auth/login", `{"email":"hr@example.com","password":"Secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirectTo":"/admin/default"`)
	assert.Contains(t, rec.Body.String(), `"employeeId":"E001"`)
	assert.Equal(t, 1, store.created)
	assert.Zero(t, metrics.failed)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestLoginFailureReturnsServerMessage(t *testing.T) {
	r, store, metrics := newRouter(t)

	rec := post(r, "/auth/login", `{"email":"hr@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"invalid email or password"`)
	assert.Empty(t, rec.Result().Cookies())
	assert.Zero(t, store.created)
	assert.Equal(t, 1, metrics.failed)

	rec = post(r, "/auth/login", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, 2, metrics.failed)
}

func TestLogoutClearsCookieAndRevokes(t *testing.T) {
	r, store, _ := newRouter(t)

	login := post(r, "/auth/login", `{"email":"hr@example.com","password":"Secret123"}`)
	require.Equal(t, http.StatusOK, login.Code)
	session := login.Result().Cookies()[0]

	rec := post(r, "/auth/logout", "", session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, store.revoked)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
	assert.Contains(t, rec.Body.String(), auth.SignInPath)
}

func TestLogoutRequiresSession(t *testing.T) {
	r, store, _ := newRouter(t)
	rec := post(r, "/auth/logout", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, store.revoked)
}
