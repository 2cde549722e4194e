package performance

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/notifications"
)

type Notifier interface {
	Notify(ctx context.Context, employeeID, ntype, title, body string)
}

type Service struct {
	store    StoreAPI
	notifier Notifier
	logger   *zap.Logger
}

func NewService(store StoreAPI, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier, logger: zap.L().Named("performance.service")}
}

func (s *Service) CreateGoal(ctx context.Context, input NewGoal) (Goal, error) {
	input.EmployeeID = strings.TrimSpace(input.EmployeeID)
	input.Goal = strings.TrimSpace(input.Goal)
	if input.Goal == "" {
		return Goal{}, ErrGoalRequired
	}
	if input.EndDate.Before(input.StartDate) {
		return Goal{}, ErrInvalidRange
	}
	exists, err := s.store.EmployeeExists(ctx, input.EmployeeID)
	if err != nil {
		return Goal{}, err
	}
	if !exists {
		return Goal{}, ErrEmployeeNotFound
	}

	goal, err := s.store.CreateGoal(ctx, Goal{EmployeeID: input.EmployeeID, Goal: input.Goal, StartDate: input.StartDate, EndDate: input.EndDate})
	if err != nil {
		return Goal{}, err
	}
	if s.notifier != nil {
		s.notifier.Notify(ctx, goal.EmployeeID, notifications.TypeGoalAssigned, "New performance goal", goal.Goal)
	}
	return goal, nil
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]Goal, error) {
	return s.store.ListGoals(ctx, employeeID)
}

func (s *Service) GetGoal(ctx context.Context, id string) (Goal, error) {
	return s.store.GetGoal(ctx, id)
}

func (s *Service) UpdateProgress(ctx context.Context, id string, progress int) (Goal, error) {
	if !ValidProgress(progress) {
		return Goal{}, ErrInvalidProgress
	}
	ok, err := s.store.UpdateProgress(ctx, id, progress)
	if err != nil {
		return Goal{}, err
	}
	if !ok {
		return Goal{}, ErrNotFound
	}
	return s.store.GetGoal(ctx, id)
}

// ScoreOverall scores one of the employee's goals and returns it updated.
func (s *Service) ScoreOverall(ctx context.Context, user auth.UserContext, employeeID, goalID string, scores Scores) (Goal, error) {
	overall, err := OverallScore(scores)
	if err != nil {
		return Goal{}, err
	}
	goal, err := s.store.GetGoal(ctx, goalID)
	if err != nil {
		return Goal{}, err
	}
	if goal.EmployeeID != employeeID {
		return Goal{}, ErrGoalMismatch
	}

	entry := ScoreEntry{
		AttendanceScore:    scores.Attendance,
		QualityScore:       scores.Quality,
		CollaborationScore: scores.Collaboration,
		OverallScore:       overall,
		Feedback:           Feedback(overall),
	}
	if err := s.store.RecordScore(ctx, goalID, entry, user.UserID); err != nil {
		return Goal{}, err
	}
	s.logger.Info("performance scored", zap.String("employeeId", employeeID), zap.String("goalId", goalID), zap.Float64("overall", overall))
	if s.notifier != nil {
		s.notifier.Notify(ctx, employeeID, notifications.TypeGoalScored,
			fmt.Sprintf("Your goal was scored %.2f", overall), entry.Feedback)
	}
	return s.store.GetGoal(ctx, goalID)
}

func (s *Service) History(ctx context.Context, employeeID string) (History, error) {
	entries, err := s.store.History(ctx, employeeID)
	if err != nil {
		return History{}, err
	}
	out := History{EmployeeID: employeeID, Entries: entries}
	for _, entry := range entries {
		out.HighestScore = math.Max(out.HighestScore, entry.OverallScore)
	}
	return out, nil
}

func (s *Service) Overview(ctx context.Context) ([]OverviewItem, error) {
	items, err := s.store.Overview(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].AverageProgress = math.Round(items[i].AverageProgress*100) / 100
	}
	return items, nil
}
