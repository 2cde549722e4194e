package employee

import "context"

type StoreAPI interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]Employee, int, error)
	ListAll(ctx context.Context) ([]Employee, error)
	Get(ctx context.Context, employeeID string) (Employee, error)
	Create(ctx context.Context, input NewEmployee, passwordHash string) (Employee, error)
	UpdateAvailability(ctx context.Context, employeeID, availability string) (Employee, error)
}
