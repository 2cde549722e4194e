package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const userColumns = `
    u.id, u.email, u.password_hash, u.role, COALESCE(u.employee_id, ''),
    COALESCE(e.name, ''), u.mfa_enabled, u.mfa_secret_enc`

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var out User
	err := row.Scan(&out.ID, &out.Email, &out.PasswordHash, &out.RoleName, &out.EmployeeID, &out.EmployeeName, &out.MFAEnabled, &out.MFASecretEnc)
	return out, err
}

func (s *Store) FindActiveUserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(s.DB.QueryRow(ctx, `
    SELECT`+userColumns+`
    FROM users u
    LEFT JOIN employees e ON e.employee_id = u.employee_id
    WHERE lower(u.email) = lower($1) AND u.status = $2
  `, email, UserStatusActive))
}

func (s *Store) FindUserByID(ctx context.Context, userID string) (User, error) {
	return scanUser(s.DB.QueryRow(ctx, `
    SELECT`+userColumns+`
    FROM users u
    LEFT JOIN employees e ON e.employee_id = u.employee_id
    WHERE u.id = $1 AND u.status = $2
  `, userID, UserStatusActive))
}

func (s *Store) CreateSession(ctx context.Context, userID, sessionHash string, expires time.Time) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO sessions (user_id, session_hash, expires_at)
    VALUES ($1,$2,$3)
  `, userID, sessionHash, expires)
	return err
}

func (s *Store) SessionValid(ctx context.Context, userID, sessionHash string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM sessions
    WHERE user_id = $1 AND session_hash = $2 AND expires_at > now() AND revoked_at IS NULL
  `, userID, sessionHash).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) RevokeSession(ctx context.Context, userID, sessionHash string) error {
	_, err := s.DB.Exec(ctx, "UPDATE sessions SET revoked_at = now() WHERE user_id = $1 AND session_hash = $2 AND revoked_at IS NULL", userID, sessionHash)
	return err
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login = now() WHERE id = $1", userID)
	return err
}

func (s *Store) UpdateMFASecret(ctx context.Context, userID string, secretEnc []byte) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET mfa_secret_enc = $1, mfa_enabled = false WHERE id = $2", secretEnc, userID)
	return err
}

func (s *Store) SetMFAEnabled(ctx context.Context, userID string, enabled bool) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET mfa_enabled = $1 WHERE id = $2", enabled, userID)
	return err
}
