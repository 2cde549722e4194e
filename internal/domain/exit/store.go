package exit

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

const exitColumns = `
    x.id, x.employee_id, e.name, x.exit_type, x.exit_date, x.reason, x.approval_status,
    x.remaining_salary, x.provident_fund, x.document_name, x.document_enc IS NOT NULL, x.created_at`

func scanExit(row pgx.Row) (Exit, error) {
	var x Exit
	err := row.Scan(&x.ID, &x.EmployeeID, &x.EmployeeName, &x.ExitType, &x.ExitDate, &x.Reason, &x.ApprovalStatus,
		&x.RemainingSalary, &x.ProvidentFund, &x.DocumentName, &x.HasDocument, &x.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Exit{}, ErrNotFound
	}
	return x, err
}

func (s *Store) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM employees WHERE employee_id = $1)", employeeID).Scan(&exists)
	return exists, err
}

func (s *Store) Create(ctx context.Context, x Exit, document *File) (Exit, error) {
	var name, contentType string
	var data []byte
	if document != nil {
		name, contentType, data = document.Name, document.ContentType, document.Data
	}
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO exits (employee_id, exit_type, exit_date, reason, remaining_salary, provident_fund,
                       document_name, document_content_type, document_enc)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING id
  `, x.EmployeeID, x.ExitType, x.ExitDate, x.Reason, x.RemainingSalary, x.ProvidentFund, name, contentType, data).Scan(&id); err != nil {
		return Exit{}, err
	}
	return s.Get(ctx, id)
}

func (s *Store) Get(ctx context.Context, id string) (Exit, error) {
	return scanExit(s.DB.QueryRow(ctx, `
    SELECT`+exitColumns+`
    FROM exits x
    JOIN employees e ON e.employee_id = x.employee_id
    WHERE x.id::text = $1
  `, id))
}

func (s *Store) List(ctx context.Context, employeeID string) ([]Exit, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+exitColumns+`
    FROM exits x
    JOIN employees e ON e.employee_id = x.employee_id
    WHERE ($1 = '' OR x.employee_id = $1)
    ORDER BY x.created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Exit{}
	for rows.Next() {
		x, err := scanExit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, rows.Err()
}

func (s *Store) Decide(ctx context.Context, id, status, actorUserID string) (bool, error) {
	var actor any
	if actorUserID != "" {
		actor = actorUserID
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE exits SET approval_status = $2, decided_by = $3
    WHERE id::text = $1 AND approval_status = 'Pending'
  `, id, status, actor)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) Document(ctx context.Context, id string) (File, error) {
	var f File
	err := s.DB.QueryRow(ctx, `
    SELECT document_name, document_content_type, document_enc
    FROM exits
    WHERE id::text = $1
  `, id).Scan(&f.Name, &f.ContentType, &f.Data)
	if errors.Is(err, pgx.ErrNoRows) {
		return File{}, ErrNotFound
	}
	return f, err
}
