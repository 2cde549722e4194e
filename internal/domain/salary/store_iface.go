package salary

import "context"

type StoreAPI interface {
	EmployeeName(ctx context.Context, employeeID string) (string, error)
	Create(ctx context.Context, record Salary) (Salary, error)
	Get(ctx context.Context, id string) (Salary, error)
	List(ctx context.Context, employeeID string, limit, offset int) ([]Salary, error)
	Latest(ctx context.Context, employeeID string) (Salary, error)
	ProvidentFundTotal(ctx context.Context, employeeID string) (float64, error)
}
