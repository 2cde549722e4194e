package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	users    map[string]User
	sessions map[string]bool
	revoked  []string
	mfa      map[string]bool
	created  int
}

func newFakeStore(users ...User) *fakeStore {
	s := &fakeStore{users: map[string]User{}, sessions: map[string]bool{}, mfa: map[string]bool{}}
	for _, u := range users {
		s.users[u.Email] = u
	}
	return s
}

func (s *fakeStore) FindActiveUserByEmail(_ context.Context, email string) (User, error) {
	u, ok := s.users[email]
	if !ok {
		return User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (s *fakeStore) FindUserByID(_ context.Context, userID string) (User, error) {
	for _, u := range s.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return User{}, pgx.ErrNoRows
}

func (s *fakeStore) CreateSession(_ context.Context, userID, hash string, _ time.Time) error {
	s.created++
	s.sessions[userID+"|"+hash] = true
	return nil
}

func (s *fakeStore) SessionValid(_ context.Context, userID, hash string) (bool, error) {
	return s.sessions[userID+"|"+hash], nil
}

func (s *fakeStore) RevokeSession(_ context.Context, userID, hash string) error {
	delete(s.sessions, userID+"|"+hash)
	s.revoked = append(s.revoked, hash)
	return nil
}

func (s *fakeStore) UpdateLastLogin(context.Context, string) error { return nil }

func (s *fakeStore) UpdateMFASecret(_ context.Context, userID string, secret []byte) error {
	for email, u := range s.users {
		if u.ID == userID {
			u.MFASecretEnc = secret
			u.MFAEnabled = false
			s.users[email] = u
		}
	}
	return nil
}

func (s *fakeStore) SetMFAEnabled(_ context.Context, userID string, enabled bool) error {
	s.mfa[userID] = enabled
	return nil
}

type plainSealer struct{}

func (plainSealer) Configured() bool                    { return true }
func (plainSealer) SealString(v string) ([]byte, error) { return []byte(v), nil }
func (plainSealer) OpenString(v []byte) (string, error) { return string(v), nil }

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return hash
}

func newTestService(store StoreAPI) *Service {
	return NewService(store, "test-secret", time.Hour, plainSealer{}, mapChecker(RolePermissions))
}

func TestLoginSuccess(t *testing.T) {
	store := newFakeStore(User{ID: "u1", Email: "pm@example.com", PasswordHash: mustHash(t, "pw"), RoleName: RoleProjectManager, EmployeeID: "E002", EmployeeName: "Sara"})
	svc := newTestService(store)

	result, err := svc.Login(context.Background(), "pm@example.com", "pw", "")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "E002", result.Employee.EmployeeID)
	assert.Equal(t, RoleProjectManager, result.Employee.Role)
	assert.Equal(t, "/projectManager/default2", result.RedirectTo)
	assert.Equal(t, 1, store.created)

	user, err := svc.Authenticate(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, "E002", user.EmployeeID)
}

func TestLoginFailureLeavesSessionsUntouched(t *testing.T) {
	store := newFakeStore(User{ID: "u1", Email: "hr@example.com", PasswordHash: mustHash(t, "pw"), RoleName: RoleHRManager})
	store.sessions["u1|existing"] = true
	svc := newTestService(store)

	_, err := svc.Login(context.Background(), "hr@example.com", "nope", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "ghost@example.com", "pw", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "", "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.Zero(t, store.created)
	assert.Empty(t, store.revoked)
	assert.True(t, store.sessions["u1|existing"])
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	store := newFakeStore(User{ID: "u1", Email: "x@example.com", PasswordHash: mustHash(t, "pw"), RoleName: "hr manager"})
	_, err := newTestService(store).Login(context.Background(), "x@example.com", "pw", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Zero(t, store.created)
}

func TestLogoutRevokesSession(t *testing.T) {
	store := newFakeStore(User{ID: "u1", Email: "e@example.com", PasswordHash: mustHash(t, "pw"), RoleName: RoleEmployee, EmployeeID: "E003"})
	svc := newTestService(store)

	result, err := svc.Login(context.Background(), "e@example.com", "pw", "")
	require.NoError(t, err)
	user, err := svc.Authenticate(context.Background(), result.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), user))
	_, err = svc.Authenticate(context.Background(), result.Token)
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	_, err := newTestService(newFakeStore()).Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestMFAFlow(t *testing.T) {
	store := newFakeStore(User{ID: "u1", Email: "hr@example.com", PasswordHash: mustHash(t, "pw"), RoleName: RoleHRManager, EmployeeID: "E001"})
	svc := newTestService(store)
	user := UserContext{UserID: "u1", EmployeeID: "E001", RoleName: RoleHRManager}

	setup, err := svc.SetupMFA(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, setup.Secret)

	assert.ErrorIs(t, svc.EnableMFA(context.Background(), user, "000000x"), ErrMFAInvalid)

	code, err := totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, svc.EnableMFA(context.Background(), user, code))
	assert.True(t, store.mfa["u1"])

	u := store.users["hr@example.com"]
	u.MFAEnabled = true
	store.users["hr@example.com"] = u

	_, err = svc.Login(context.Background(), "hr@example.com", "pw", "")
	assert.ErrorIs(t, err, ErrMFARequired)
	_, err = svc.Login(context.Background(), "hr@example.com", "pw", "123")
	assert.ErrorIs(t, err, ErrMFAInvalid)
	_, err = svc.Login(context.Background(), "hr@example.com", "pw", code)
	assert.NoError(t, err)
}

func TestSessionInfo(t *testing.T) {
	store := newFakeStore(User{ID: "u1", Email: "e@example.com", RoleName: RoleEmployee, EmployeeID: "E003", EmployeeName: "Omar"})
	info, err := newTestService(store).Session(context.Background(), UserContext{UserID: "u1", EmployeeID: "E003", RoleName: RoleEmployee})
	require.NoError(t, err)
	assert.Equal(t, "/employee/dashboard", info.LandingPath)
	assert.Equal(t, LayoutEmployee, info.Layout)
	assert.Equal(t, "Omar", info.Employee.Name)
	assert.NotEmpty(t, info.Navigation)

	_, err = newTestService(newFakeStore()).Session(context.Background(), UserContext{UserID: "missing"})
	assert.True(t, errors.Is(err, ErrSessionInvalid))
}
