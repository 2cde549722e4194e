package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/platform/config"
)

// Seed makes sure an HR Manager account exists so the system can be
// bootstrapped. It is a no-op when SEED_ADMIN_EMAIL or SEED_ADMIN_PASSWORD
// are empty or the account already exists.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	email := strings.ToLower(strings.TrimSpace(cfg.SeedAdminEmail))
	if email == "" || strings.TrimSpace(cfg.SeedAdminPassword) == "" {
		return nil
	}

	var existing string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&existing)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var seq int64
	if err := tx.QueryRow(ctx, "SELECT nextval('employee_code_seq')").Scan(&seq); err != nil {
		return err
	}
	code := employee.FormatCode(seq)

	if _, err := tx.Exec(ctx, `
    INSERT INTO employees (employee_id, name, email, position, designation, department, role, hire_date)
    VALUES ($1,$2,$3,'HR Manager','HR Manager','Human Resources',$4,CURRENT_DATE)
  `, code, cfg.SeedAdminName, email, auth.RoleHRManager); err != nil {
		return fmt.Errorf("seed admin employee: %w", err)
	}
	if _, err := tx.Exec(ctx, `
    INSERT INTO users (email, password_hash, role, employee_id)
    VALUES ($1,$2,$3,$4)
  `, email, hash, auth.RoleHRManager, code); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	zap.L().Named("db").Info("seeded admin account", zap.String("email", email), zap.String("employeeId", code))
	return nil
}
