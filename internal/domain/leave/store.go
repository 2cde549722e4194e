package leave

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const requestColumns = `
    l.id, l.employee_id, e.name, l.leave_type, l.start_date, l.end_date, l.days, l.reason,
    l.status, l.hr_approval, l.pm_approval, l.rejection_reason, l.created_at, l.updated_at`

func scanRequest(row pgx.Row) (Request, error) {
	var req Request
	err := row.Scan(&req.ID, &req.EmployeeID, &req.EmployeeName, &req.LeaveType, &req.StartDate, &req.EndDate, &req.Days, &req.Reason,
		&req.Status, &req.HRApproval, &req.PMApproval, &req.RejectionReason, &req.CreatedAt, &req.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return req, err
}

func (s *Store) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM employees WHERE employee_id = $1)", employeeID).Scan(&exists)
	return exists, err
}

func (s *Store) CreateRequest(ctx context.Context, req Request) (Request, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, days, reason)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, req.EmployeeID, req.LeaveType, req.StartDate, req.EndDate, req.Days, req.Reason).Scan(&id); err != nil {
		return Request{}, err
	}
	return s.GetRequest(ctx, id)
}

func (s *Store) GetRequest(ctx context.Context, id string) (Request, error) {
	return scanRequest(s.DB.QueryRow(ctx, `
    SELECT`+requestColumns+`
    FROM leave_requests l
    JOIN employees e ON e.employee_id = l.employee_id
    WHERE l.id::text = $1
  `, id))
}

func (s *Store) ListRequests(ctx context.Context, filter Filter, limit, offset int) (RequestListResult, error) {
	where := []string{"1=1"}
	args := []any{}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where = append(where, fmt.Sprintf("l.employee_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("l.status = $%d", len(args)))
	}
	clause := strings.Join(where, " AND ")

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM leave_requests l WHERE "+clause, args...).Scan(&total); err != nil {
		return RequestListResult{}, err
	}

	query := fmt.Sprintf(`
    SELECT %s
    FROM leave_requests l
    JOIN employees e ON e.employee_id = l.employee_id
    WHERE %s
    ORDER BY l.created_at DESC
    LIMIT $%d OFFSET $%d`, requestColumns, clause, len(args)+1, len(args)+2)
	rows, err := s.DB.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return RequestListResult{}, err
	}
	defer rows.Close()

	items := []Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return RequestListResult{}, err
		}
		items = append(items, req)
	}
	return RequestListResult{Items: items, Total: total}, rows.Err()
}

// SaveDecision locks the request row and applies the decision to the
// stored approvals, so two approvers deciding at once cannot overwrite
// each other's field.
func (s *Store) SaveDecision(ctx context.Context, id, approver, status, reason, actorUserID string) (Request, Request, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Request{}, Request{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	current, err := scanRequest(tx.QueryRow(ctx, `
    SELECT`+requestColumns+`
    FROM leave_requests l
    JOIN employees e ON e.employee_id = l.employee_id
    WHERE l.id::text = $1
    FOR UPDATE OF l
  `, id))
	if err != nil {
		return Request{}, Request{}, err
	}
	next, err := Decide(current, approver, status, reason)
	if err != nil {
		return Request{}, Request{}, err
	}

	actorField := "hr_decided_by"
	if approver == ApproverPM {
		actorField = "pm_decided_by"
	}
	var actor any
	if actorUserID != "" {
		actor = actorUserID
	}
	if err := tx.QueryRow(ctx, fmt.Sprintf(`
    UPDATE leave_requests
    SET hr_approval = $2, pm_approval = $3, status = $4, rejection_reason = $5, %s = $6, updated_at = now()
    WHERE id = $1
    RETURNING updated_at
  `, actorField), current.ID, next.HRApproval, next.PMApproval, next.Status, next.RejectionReason, actor).Scan(&next.UpdatedAt); err != nil {
		return Request{}, Request{}, err
	}
	return current, next, tx.Commit(ctx)
}

// DaysByStatus sums the days of year each request covers, so a leave
// spanning New Year counts partly against each year.
func (s *Store) DaysByStatus(ctx context.Context, employeeID string, year int) (float64, float64, error) {
	var approved, pending float64
	err := s.DB.QueryRow(ctx, `
    WITH bounds AS (SELECT make_date($2, 1, 1) AS first_day, make_date($2, 12, 31) AS last_day),
    covered AS (
      SELECT l.status, (LEAST(l.end_date, b.last_day) - GREATEST(l.start_date, b.first_day) + 1)::float8 AS days
      FROM leave_requests l, bounds b
      WHERE l.employee_id = $1 AND l.start_date <= b.last_day AND l.end_date >= b.first_day
    )
    SELECT COALESCE(SUM(days) FILTER (WHERE status = 'Approved'), 0),
           COALESCE(SUM(days) FILTER (WHERE status = 'Pending'), 0)
    FROM covered
  `, employeeID, year).Scan(&approved, &pending)
	return approved, pending, err
}
