package timesheet

import (
	"context"
	"io"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"hrms/internal/platform/spreadsheet"
)

type Service struct {
	store         StoreAPI
	shortLeaveHrs float64
	now           func() time.Time
	logger        *zap.Logger
}

// NewService flags entries shorter than shortLeaveHours as short leave.
func NewService(store StoreAPI, shortLeaveHours float64) *Service {
	return &Service{
		store:         store,
		shortLeaveHrs: shortLeaveHours,
		now:           time.Now,
		logger:        zap.L().Named("timesheet.service"),
	}
}

func (s *Service) Create(ctx context.Context, input NewEntry) (Entry, error) {
	input.EmployeeID = strings.TrimSpace(input.EmployeeID)
	total, err := TotalHours(input.CheckInTime, input.CheckOutTime)
	if err != nil {
		return Entry{}, err
	}
	exists, err := s.store.EmployeeExists(ctx, input.EmployeeID)
	if err != nil {
		return Entry{}, err
	}
	if !exists {
		return Entry{}, ErrEmployeeNotFound
	}

	entry, err := s.store.Create(ctx, Entry{
		EmployeeID:   input.EmployeeID,
		Date:         input.Date,
		CheckInTime:  strings.TrimSpace(input.CheckInTime),
		CheckOutTime: strings.TrimSpace(input.CheckOutTime),
		TotalHours:   total,
		IsShortLeave: total < s.shortLeaveHrs,
	})
	if err != nil {
		return Entry{}, err
	}
	s.logger.Info("timesheet recorded",
		zap.String("employeeId", entry.EmployeeID),
		zap.Float64("hours", entry.TotalHours),
		zap.Bool("shortLeave", entry.IsShortLeave),
	)
	return entry, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Entry, error) {
	return s.store.List(ctx, "", limit, offset)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string, limit, offset int) ([]Entry, error) {
	return s.store.List(ctx, employeeID, limit, offset)
}

func (s *Service) OverallHours(ctx context.Context, period string) (OverallResult, error) {
	from, to, err := Window(period, s.now())
	if err != nil {
		return OverallResult{}, err
	}
	items, err := s.store.Overall(ctx, from, to)
	if err != nil {
		return OverallResult{}, err
	}
	for i := range items {
		items[i].TotalHours = math.Round(items[i].TotalHours*100) / 100
	}
	return OverallResult{
		Period:    period,
		From:      from.Format(time.DateOnly),
		To:        to.AddDate(0, 0, -1).Format(time.DateOnly),
		Employees: items,
	}, nil
}

// Export writes every entry, or one employee's when employeeID is set.
func (s *Service) Export(ctx context.Context, w io.Writer, employeeID string) error {
	entries, err := s.store.List(ctx, employeeID, 0, 0)
	if err != nil {
		return err
	}
	table := spreadsheet.Table{
		Sheet:   "Timesheets",
		Headers: []string{"Employee ID", "Name", "Date", "Check in", "Check out", "Total hours", "Short leave"},
	}
	for _, entry := range entries {
		shortLeave := "No"
		if entry.IsShortLeave {
			shortLeave = "Yes"
		}
		table.Rows = append(table.Rows, []any{
			entry.EmployeeID, entry.EmployeeName, entry.Date.Format(time.DateOnly),
			entry.CheckInTime, entry.CheckOutTime, entry.TotalHours, shortLeave,
		})
	}
	return spreadsheet.Write(w, table)
}
