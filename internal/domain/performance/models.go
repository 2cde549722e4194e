package performance

import (
	"errors"
	"time"
)

const (
	FeedbackExcellent  = "Excellent performance. Keep up the great work!"
	FeedbackGood       = "Good performance with room to grow."
	FeedbackAverage    = "Average performance. Focus on the weaker areas."
	FeedbackNeedsWork  = "Performance needs improvement. Let's set up a plan together."
	maxScore           = 100.0
	maxProgressPercent = 100
)

var (
	ErrNotFound         = errors.New("performance goal not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrGoalRequired     = errors.New("goal is required")
	ErrInvalidRange     = errors.New("end date before start date")
	ErrInvalidScore     = errors.New("scores must be between 0 and 100")
	ErrInvalidProgress  = errors.New("progress must be between 0 and 100")
	ErrGoalMismatch     = errors.New("goal does not belong to this employee")
)

type Goal struct {
	ID                 string    `json:"id"`
	EmployeeID         string    `json:"employeeId"`
	EmployeeName       string    `json:"employeeName,omitempty"`
	Goal               string    `json:"goal"`
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	Progress           int       `json:"progress"`
	AttendanceScore    *float64  `json:"attendanceScore"`
	QualityScore       *float64  `json:"qualityScore"`
	CollaborationScore *float64  `json:"collaborationScore"`
	OverallScore       *float64  `json:"overallScore"`
	Feedback           string    `json:"feedback"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type NewGoal struct {
	EmployeeID string
	Goal       string
	StartDate  time.Time
	EndDate    time.Time
}

type Scores struct {
	Attendance    float64
	Quality       float64
	Collaboration float64
}

// ScoreEntry is one scoring event in an employee's history.
type ScoreEntry struct {
	ID                 string    `json:"id"`
	GoalID             string    `json:"goalId"`
	Goal               string    `json:"goal"`
	AttendanceScore    float64   `json:"attendanceScore"`
	QualityScore       float64   `json:"qualityScore"`
	CollaborationScore float64   `json:"collaborationScore"`
	OverallScore       float64   `json:"overallScore"`
	Feedback           string    `json:"feedback"`
	CreatedAt          time.Time `json:"createdAt"`
}

type History struct {
	EmployeeID   string       `json:"employeeId"`
	HighestScore float64      `json:"highestOverallScore"`
	Entries      []ScoreEntry `json:"history"`
}

type OverviewItem struct {
	EmployeeID      string     `json:"employeeId"`
	EmployeeName    string     `json:"employeeName"`
	Goals           int        `json:"goals"`
	AverageProgress float64    `json:"averageProgress"`
	LatestScore     *float64   `json:"latestOverallScore"`
	LatestScoredAt  *time.Time `json:"latestScoredAt"`
}
