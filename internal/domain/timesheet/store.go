package timesheet

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

func (s *Store) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM employees WHERE employee_id = $1)", employeeID).Scan(&exists)
	return exists, err
}

func (s *Store) Create(ctx context.Context, entry Entry) (Entry, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO timesheets (employee_id, work_date, check_in_time, check_out_time, total_hours, is_short_leave)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id, created_at
  `, entry.EmployeeID, entry.Date, entry.CheckInTime, entry.CheckOutTime, entry.TotalHours, entry.IsShortLeave).
		Scan(&entry.ID, &entry.CreatedAt)
	return entry, err
}

// List returns entries newest first; employeeID "" lists everyone and a
// non-positive limit returns every row.
func (s *Store) List(ctx context.Context, employeeID string, limit, offset int) ([]Entry, error) {
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}
	rows, err := s.DB.Query(ctx, `
    SELECT t.id, t.employee_id, e.name, t.work_date, t.check_in_time, t.check_out_time,
           t.total_hours, t.is_short_leave, t.created_at
    FROM timesheets t
    JOIN employees e ON e.employee_id = t.employee_id
    WHERE ($1 = '' OR t.employee_id = $1)
    ORDER BY t.work_date DESC, t.created_at DESC
    LIMIT $2 OFFSET $3
  `, employeeID, limitArg, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.EmployeeName, &entry.Date, &entry.CheckInTime, &entry.CheckOutTime,
			&entry.TotalHours, &entry.IsShortLeave, &entry.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (s *Store) Overall(ctx context.Context, from, to time.Time) ([]Overall, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT t.employee_id, e.name, COALESCE(SUM(t.total_hours), 0), COUNT(DISTINCT t.work_date),
           COUNT(*) FILTER (WHERE t.is_short_leave)
    FROM timesheets t
    JOIN employees e ON e.employee_id = t.employee_id
    WHERE t.work_date >= $1 AND t.work_date < $2
    GROUP BY t.employee_id, e.name
    ORDER BY t.employee_id
  `, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Overall{}
	for rows.Next() {
		var item Overall
		if err := rows.Scan(&item.EmployeeID, &item.EmployeeName, &item.TotalHours, &item.DaysWorked, &item.ShortLeaves); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
