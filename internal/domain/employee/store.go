package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const selectColumns = `
    e.id, e.employee_id, e.name, COALESCE(e.email, ''), e.position, e.designation, e.department,
    e.phone_number, e.availability, e.hire_date, e.role,
    EXISTS (SELECT 1 FROM users u WHERE u.employee_id = e.employee_id), e.created_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var out Employee
	err := row.Scan(&out.ID, &out.EmployeeID, &out.Name, &out.Email, &out.Position, &out.Designation, &out.Department,
		&out.PhoneNumber, &out.Availability, &out.HireDate, &out.Role, &out.HasAccount, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return out, err
}

func buildFilter(filter Filter) (string, []any) {
	where := []string{"1=1"}
	args := []any{}
	add := func(clause string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if filter.Department != "" {
		add("e.department = $%d", filter.Department)
	}
	if filter.Availability != "" {
		add("e.availability = $%d", filter.Availability)
	}
	if filter.Role != "" {
		add("e.role = $%d", filter.Role)
	}
	if filter.Search != "" {
		add("(e.name ILIKE $%[1]d OR e.employee_id ILIKE $%[1]d)", "%"+filter.Search+"%")
	}
	return strings.Join(where, " AND "), args
}

func (s *Store) List(ctx context.Context, filter Filter, limit, offset int) ([]Employee, int, error) {
	where, args := buildFilter(filter)

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees e WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM employees e WHERE %s ORDER BY e.employee_id LIMIT $%d OFFSET $%d",
		selectColumns, where, len(args)+1, len(args)+2)
	rows, err := s.DB.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, emp)
	}
	return out, total, rows.Err()
}

func (s *Store) ListAll(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+selectColumns+" FROM employees e ORDER BY e.employee_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, employeeID string) (Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, "SELECT "+selectColumns+" FROM employees e WHERE e.employee_id = $1 OR e.id::text = $1", employeeID))
}

// Create allocates the next employee id and, when passwordHash is set,
// the matching login account in the same transaction.
func (s *Store) Create(ctx context.Context, input NewEmployee, passwordHash string) (Employee, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Employee{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var seq int64
	if err := tx.QueryRow(ctx, "SELECT nextval('employee_code_seq')").Scan(&seq); err != nil {
		return Employee{}, err
	}
	code := FormatCode(seq)

	var email any
	if input.Email != "" {
		email = input.Email
	}
	if _, err := tx.Exec(ctx, `
    INSERT INTO employees (employee_id, name, email, position, designation, department, phone_number, availability, hire_date, role)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
  `, code, input.Name, email, input.Position, input.Designation, input.Department, input.PhoneNumber, input.Availability, input.HireDate, input.Role); err != nil {
		return Employee{}, err
	}

	if passwordHash != "" {
		if _, err := tx.Exec(ctx, `
      INSERT INTO users (email, password_hash, role, employee_id)
      VALUES ($1,$2,$3,$4)
    `, input.Email, passwordHash, input.Role, code); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return Employee{}, ErrDuplicateEmail
			}
			return Employee{}, err
		}
	}

	emp, err := scanEmployee(tx.QueryRow(ctx, "SELECT "+selectColumns+" FROM employees e WHERE e.employee_id = $1", code))
	if err != nil {
		return Employee{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func (s *Store) UpdateAvailability(ctx context.Context, employeeID, availability string) (Employee, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees SET availability = $1, updated_at = now()
    WHERE employee_id = $2
  `, availability, employeeID)
	if err != nil {
		return Employee{}, err
	}
	if tag.RowsAffected() == 0 {
		return Employee{}, ErrNotFound
	}
	return s.Get(ctx, employeeID)
}
