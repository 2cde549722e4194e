package performance

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

const goalColumns = `
    g.id, g.employee_id, e.name, g.goal, g.start_date, g.end_date, g.progress,
    g.attendance_score, g.quality_score, g.collaboration_score, g.overall_score,
    g.feedback, g.created_at, g.updated_at`

func scanGoal(row pgx.Row) (Goal, error) {
	var g Goal
	err := row.Scan(&g.ID, &g.EmployeeID, &g.EmployeeName, &g.Goal, &g.StartDate, &g.EndDate, &g.Progress,
		&g.AttendanceScore, &g.QualityScore, &g.CollaborationScore, &g.OverallScore,
		&g.Feedback, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Goal{}, ErrNotFound
	}
	return g, err
}

func (s *Store) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM employees WHERE employee_id = $1)", employeeID).Scan(&exists)
	return exists, err
}

func (s *Store) CreateGoal(ctx context.Context, goal Goal) (Goal, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO performance_goals (employee_id, goal, start_date, end_date)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, goal.EmployeeID, goal.Goal, goal.StartDate, goal.EndDate).Scan(&id); err != nil {
		return Goal{}, err
	}
	return s.GetGoal(ctx, id)
}

func (s *Store) GetGoal(ctx context.Context, id string) (Goal, error) {
	return scanGoal(s.DB.QueryRow(ctx, `
    SELECT`+goalColumns+`
    FROM performance_goals g
    JOIN employees e ON e.employee_id = g.employee_id
    WHERE g.id::text = $1
  `, id))
}

func (s *Store) ListGoals(ctx context.Context, employeeID string) ([]Goal, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+goalColumns+`
    FROM performance_goals g
    JOIN employees e ON e.employee_id = g.employee_id
    WHERE g.employee_id = $1
    ORDER BY g.start_date DESC, g.created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *Store) UpdateProgress(ctx context.Context, id string, progress int) (bool, error) {
	tag, err := s.DB.Exec(ctx, "UPDATE performance_goals SET progress = $2, updated_at = now() WHERE id::text = $1", id, progress)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) RecordScore(ctx context.Context, goalID string, entry ScoreEntry, actorUserID string) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var employeeID string
	err = tx.QueryRow(ctx, `
    UPDATE performance_goals
    SET attendance_score = $2, quality_score = $3, collaboration_score = $4,
        overall_score = $5, feedback = $6, updated_at = now()
    WHERE id::text = $1
    RETURNING employee_id
  `, goalID, entry.AttendanceScore, entry.QualityScore, entry.CollaborationScore, entry.OverallScore, entry.Feedback).Scan(&employeeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	var actor any
	if actorUserID != "" {
		actor = actorUserID
	}
	if _, err := tx.Exec(ctx, `
    INSERT INTO performance_scores (goal_id, employee_id, attendance_score, quality_score, collaboration_score, overall_score, feedback, scored_by)
    VALUES ($1::uuid,$2,$3,$4,$5,$6,$7,$8)
  `, goalID, employeeID, entry.AttendanceScore, entry.QualityScore, entry.CollaborationScore, entry.OverallScore, entry.Feedback, actor); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) History(ctx context.Context, employeeID string) ([]ScoreEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT ps.id, ps.goal_id, g.goal, ps.attendance_score, ps.quality_score, ps.collaboration_score,
           ps.overall_score, ps.feedback, ps.created_at
    FROM performance_scores ps
    JOIN performance_goals g ON g.id = ps.goal_id
    WHERE ps.employee_id = $1
    ORDER BY ps.created_at
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ScoreEntry{}
	for rows.Next() {
		var entry ScoreEntry
		if err := rows.Scan(&entry.ID, &entry.GoalID, &entry.Goal, &entry.AttendanceScore, &entry.QualityScore, &entry.CollaborationScore,
			&entry.OverallScore, &entry.Feedback, &entry.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (s *Store) Overview(ctx context.Context) ([]OverviewItem, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.employee_id, e.name, COUNT(g.id), COALESCE(AVG(g.progress), 0),
           latest.overall_score, latest.created_at
    FROM employees e
    LEFT JOIN performance_goals g ON g.employee_id = e.employee_id
    LEFT JOIN LATERAL (
      SELECT ps.overall_score, ps.created_at
      FROM performance_scores ps
      WHERE ps.employee_id = e.employee_id
      ORDER BY ps.created_at DESC
      LIMIT 1
    ) latest ON true
    GROUP BY e.employee_id, e.name, latest.overall_score, latest.created_at
    ORDER BY e.employee_id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []OverviewItem{}
	for rows.Next() {
		var item OverviewItem
		if err := rows.Scan(&item.EmployeeID, &item.EmployeeName, &item.Goals, &item.AverageProgress, &item.LatestScore, &item.LatestScoredAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
