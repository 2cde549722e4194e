// Package dbtest opens the integration database for store tests. Tests
// are skipped unless TEST_DATABASE_URL is set.
package dbtest

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"hrms/internal/platform/config"
	"hrms/internal/platform/db"
)

// migrateLock serialises goose runs from packages tested in parallel.
const migrateLock = 7283401

func Open(t testing.TB) *pgxpool.Pool {
	t.Helper()
	url := strings.TrimSpace(os.Getenv("TEST_DATABASE_URL"))
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	conn, err := pgx.Connect(ctx, url)
	require.NoError(t, err)
	defer conn.Close(ctx)
	_, err = conn.Exec(ctx, "SELECT pg_advisory_lock($1)", migrateLock)
	require.NoError(t, err)
	err = db.Migrate(ctx, url, "up")
	_, _ = conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", migrateLock)
	require.NoError(t, err)

	pool, err := db.Connect(ctx, config.Config{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

// Employee inserts an employee with a unique code and removes it, with
// everything that cascades from it, when the test ends.
func Employee(t testing.TB, pool *pgxpool.Pool, name string) string {
	t.Helper()
	code := "T" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	_, err := pool.Exec(context.Background(), `
    INSERT INTO employees (employee_id, name, role) VALUES ($1, $2, 'Employee')
  `, code, name)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DELETE FROM employees WHERE employee_id = $1", code)
	})
	return code
}
