package timesheet

import (
	"context"
	"time"
)

type StoreAPI interface {
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	Create(ctx context.Context, entry Entry) (Entry, error)
	List(ctx context.Context, employeeID string, limit, offset int) ([]Entry, error)
	Overall(ctx context.Context, from, to time.Time) ([]Overall, error)
}
