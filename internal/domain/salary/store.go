package salary

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const selectColumns = `
    s.id, s.employee_id, e.name, s.month, s.year, s.base_salary, s.is_tax_filer,
    COALESCE(s.tax_rate, 0), COALESCE(s.provident_fund_rate, 0),
    s.allowances, s.deductions, s.extra_allowances, s.extra_deductions,
    s.total_allowances, s.total_deductions, s.gross_salary, s.net_salary,
    COALESCE(s.created_by::text, ''), s.created_at`

func scanSalary(row pgx.Row) (Salary, error) {
	var out Salary
	err := row.Scan(&out.ID, &out.EmployeeID, &out.EmployeeName, &out.Month, &out.Year, &out.BaseSalary, &out.IsTaxFiler,
		&out.TaxRate, &out.ProvidentFundRate,
		&out.Allowances, &out.Deductions, &out.ExtraAllowances, &out.ExtraDeductions,
		&out.TotalAllowances, &out.TotalDeductions, &out.GrossSalary, &out.NetSalary,
		&out.CreatedBy, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Salary{}, ErrNotFound
	}
	return out, err
}

func (s *Store) EmployeeName(ctx context.Context, employeeID string) (string, error) {
	var name string
	err := s.DB.QueryRow(ctx, "SELECT name FROM employees WHERE employee_id = $1", employeeID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrEmployeeNotFound
	}
	return name, err
}

func (s *Store) Create(ctx context.Context, record Salary) (Salary, error) {
	var createdBy any
	if record.CreatedBy != "" {
		createdBy = record.CreatedBy
	}
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO salaries (employee_id, month, year, base_salary, is_tax_filer, tax_rate, provident_fund_rate,
                          allowances, deductions, extra_allowances, extra_deductions,
                          total_allowances, total_deductions, gross_salary, net_salary, created_by)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
    RETURNING id
  `, record.EmployeeID, record.Month, record.Year, record.BaseSalary, record.IsTaxFiler, record.TaxRate, record.ProvidentFundRate,
		record.Allowances, record.Deductions, record.ExtraAllowances, record.ExtraDeductions,
		record.TotalAllowances, record.TotalDeductions, record.GrossSalary, record.NetSalary, createdBy).Scan(&id); err != nil {
		return Salary{}, err
	}
	return s.Get(ctx, id)
}

func (s *Store) Get(ctx context.Context, id string) (Salary, error) {
	return scanSalary(s.DB.QueryRow(ctx, `
    SELECT`+selectColumns+`
    FROM salaries s
    JOIN employees e ON e.employee_id = s.employee_id
    WHERE s.id::text = $1
  `, id))
}

// List returns salaries newest period first; employeeID "" lists everyone.
func (s *Store) List(ctx context.Context, employeeID string, limit, offset int) ([]Salary, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+selectColumns+`
    FROM salaries s
    JOIN employees e ON e.employee_id = s.employee_id
    WHERE ($1 = '' OR s.employee_id = $1)
    ORDER BY s.year DESC, s.month DESC, s.created_at DESC
    LIMIT $2 OFFSET $3
  `, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Salary{}
	for rows.Next() {
		record, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

func (s *Store) Latest(ctx context.Context, employeeID string) (Salary, error) {
	return scanSalary(s.DB.QueryRow(ctx, `
    SELECT`+selectColumns+`
    FROM salaries s
    JOIN employees e ON e.employee_id = s.employee_id
    WHERE s.employee_id = $1
    ORDER BY s.year DESC, s.month DESC, s.created_at DESC
    LIMIT 1
  `, employeeID))
}

func (s *Store) ProvidentFundTotal(ctx context.Context, employeeID string) (float64, error) {
	var total float64
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM((deductions->>'providentFund')::numeric), 0)::float8
    FROM salaries
    WHERE employee_id = $1
  `, employeeID).Scan(&total)
	return total, err
}
