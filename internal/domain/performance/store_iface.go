package performance

import "context"

type StoreAPI interface {
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	CreateGoal(ctx context.Context, goal Goal) (Goal, error)
	GetGoal(ctx context.Context, id string) (Goal, error)
	ListGoals(ctx context.Context, employeeID string) ([]Goal, error)
	UpdateProgress(ctx context.Context, id string, progress int) (bool, error)
	// RecordScore updates the goal and appends a history entry atomically.
	RecordScore(ctx context.Context, goalID string, entry ScoreEntry, actorUserID string) error
	History(ctx context.Context, employeeID string) ([]ScoreEntry, error)
	Overview(ctx context.Context) ([]OverviewItem, error)
}
