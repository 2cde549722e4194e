package loan

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

const loanColumns = `
    l.id, l.employee_id, e.name, l.loan_amount, l.monthly_installment, l.remaining_balance,
    l.reason, l.status, l.decided_at, l.created_at`

func scanLoan(row pgx.Row) (Loan, error) {
	var l Loan
	err := row.Scan(&l.ID, &l.EmployeeID, &l.EmployeeName, &l.LoanAmount, &l.MonthlyInstallment, &l.RemainingBalance,
		&l.Reason, &l.Status, &l.DecidedAt, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Loan{}, ErrNotFound
	}
	return l, err
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func (s *Store) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM employees WHERE employee_id = $1)", employeeID).Scan(&exists)
	return exists, err
}

func (s *Store) Create(ctx context.Context, l Loan) (Loan, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO loans (employee_id, loan_amount, monthly_installment, remaining_balance, reason)
    VALUES ($1,$2,$3,$2,$4)
    RETURNING id
  `, l.EmployeeID, l.LoanAmount, l.MonthlyInstallment, l.Reason).Scan(&id); err != nil {
		return Loan{}, err
	}
	return s.Get(ctx, id)
}

func (s *Store) Get(ctx context.Context, id string) (Loan, error) {
	return scanLoan(s.DB.QueryRow(ctx, `
    SELECT`+loanColumns+`
    FROM loans l
    JOIN employees e ON e.employee_id = l.employee_id
    WHERE l.id::text = $1
  `, id))
}

func (s *Store) List(ctx context.Context, employeeID string, limit, offset int) ([]Loan, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+loanColumns+`
    FROM loans l
    JOIN employees e ON e.employee_id = l.employee_id
    WHERE ($1 = '' OR l.employee_id = $1)
    ORDER BY l.created_at DESC
    LIMIT $2 OFFSET $3
  `, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Loan{}
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) Decide(ctx context.Context, id, status, actorUserID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE loans SET status = $2, decided_by = $3, decided_at = now()
    WHERE id::text = $1 AND status = 'Pending'
  `, id, status, nullable(actorUserID))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Repay locks the loan row so concurrent repayments cannot overdraw it.
func (s *Store) Repay(ctx context.Context, loanID string, amount float64, actorUserID string) (Repayment, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Repayment{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var status string
	var remaining float64
	err = tx.QueryRow(ctx, "SELECT status, remaining_balance FROM loans WHERE id::text = $1 FOR UPDATE", loanID).Scan(&status, &remaining)
	if errors.Is(err, pgx.ErrNoRows) {
		return Repayment{}, ErrNotFound
	}
	if err != nil {
		return Repayment{}, err
	}
	if status != StatusApproved || amount > remaining {
		return Repayment{}, ErrInvalidState
	}

	if _, err := tx.Exec(ctx, `
    UPDATE loans
    SET remaining_balance = remaining_balance - $2,
        status = CASE WHEN remaining_balance - $2 <= 0 THEN 'Paid' ELSE status END
    WHERE id::text = $1
  `, loanID, amount); err != nil {
		return Repayment{}, err
	}

	rep := Repayment{LoanID: loanID, Amount: amount}
	if err := tx.QueryRow(ctx, `
    INSERT INTO loan_repayments (loan_id, amount, recorded_by)
    VALUES ($1,$2,$3)
    RETURNING id, created_at
  `, loanID, amount, nullable(actorUserID)).Scan(&rep.ID, &rep.CreatedAt); err != nil {
		return Repayment{}, err
	}
	return rep, tx.Commit(ctx)
}
