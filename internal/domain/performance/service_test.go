package performance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/auth"
)

type fakeStore struct {
	goals    map[string]Goal
	recorded []ScoreEntry
	history  []ScoreEntry
}

func (f *fakeStore) EmployeeExists(_ context.Context, id string) (bool, error) {
	return id == "E005", nil
}

func (f *fakeStore) CreateGoal(_ context.Context, goal Goal) (Goal, error) {
	goal.ID = "g-new"
	f.goals[goal.ID] = goal
	return goal, nil
}

func (f *fakeStore) GetGoal(_ context.Context, id string) (Goal, error) {
	goal, ok := f.goals[id]
	if !ok {
		return Goal{}, ErrNotFound
	}
	return goal, nil
}

func (f *fakeStore) ListGoals(context.Context, string) ([]Goal, error) { return nil, nil }

func (f *fakeStore) UpdateProgress(_ context.Context, id string, progress int) (bool, error) {
	goal, ok := f.goals[id]
	if !ok {
		return false, nil
	}
	goal.Progress = progress
	f.goals[id] = goal
	return true, nil
}

func (f *fakeStore) RecordScore(_ context.Context, goalID string, entry ScoreEntry, _ string) error {
	goal := f.goals[goalID]
	goal.OverallScore = &entry.OverallScore
	goal.Feedback = entry.Feedback
	f.goals[goalID] = goal
	f.recorded = append(f.recorded, entry)
	return nil
}

func (f *fakeStore) History(context.Context, string) ([]ScoreEntry, error) { return f.history, nil }

func (f *fakeStore) Overview(context.Context) ([]OverviewItem, error) {
	return []OverviewItem{{EmployeeID: "E005", AverageProgress: 33.3333}}, nil
}

func newStore() *fakeStore {
	return &fakeStore{goals: map[string]Goal{"g1": {ID: "g1", EmployeeID: "E005", Goal: "Ship v2"}}}
}

func TestCreateGoalValidation(t *testing.T) {
	svc := NewService(newStore(), nil)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateGoal(context.Background(), NewGoal{EmployeeID: "E005", Goal: " ", StartDate: start, EndDate: start})
	assert.ErrorIs(t, err, ErrGoalRequired)

	_, err = svc.CreateGoal(context.Background(), NewGoal{EmployeeID: "E005", Goal: "x", StartDate: start, EndDate: start.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidRange)

	goal, err := svc.CreateGoal(context.Background(), NewGoal{EmployeeID: "E005", Goal: "Mentor juniors", StartDate: start, EndDate: start.AddDate(0, 3, 0)})
	require.NoError(t, err)
	assert.Equal(t, "g-new", goal.ID)
}

func TestScoreOverallAppendsHistory(t *testing.T) {
	store := newStore()
	svc := NewService(store, nil)

	goal, err := svc.ScoreOverall(context.Background(), auth.UserContext{UserID: "pm"}, "E005", "g1", Scores{Attendance: 95, Quality: 90, Collaboration: 85})
	require.NoError(t, err)
	require.NotNil(t, goal.OverallScore)
	assert.Equal(t, 90.0, *goal.OverallScore)
	assert.Equal(t, FeedbackExcellent, goal.Feedback)

	_, err = svc.ScoreOverall(context.Background(), auth.UserContext{}, "E005", "g1", Scores{Attendance: 40, Quality: 40, Collaboration: 40})
	require.NoError(t, err)
	assert.Len(t, store.recorded, 2)

	_, err = svc.ScoreOverall(context.Background(), auth.UserContext{}, "E006", "g1", Scores{})
	assert.ErrorIs(t, err, ErrGoalMismatch)
}

func TestUpdateProgress(t *testing.T) {
	svc := NewService(newStore(), nil)

	goal, err := svc.UpdateProgress(context.Background(), "g1", 60)
	require.NoError(t, err)
	assert.Equal(t, 60, goal.Progress)

	_, err = svc.UpdateProgress(context.Background(), "g1", 140)
	assert.ErrorIs(t, err, ErrInvalidProgress)

	_, err = svc.UpdateProgress(context.Background(), "missing", 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryHighestScore(t *testing.T) {
	store := newStore()
	store.history = []ScoreEntry{{OverallScore: 71}, {OverallScore: 88.5}, {OverallScore: 80}}

	out, err := NewService(store, nil).History(context.Background(), "E005")
	require.NoError(t, err)
	assert.Equal(t, 88.5, out.HighestScore)
	assert.Len(t, out.Entries, 3)

	items, err := NewService(store, nil).Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 33.33, items[0].AverageProgress)
}
