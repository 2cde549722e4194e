package exit

import "context"

type StoreAPI interface {
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	Create(ctx context.Context, e Exit, document *File) (Exit, error)
	Get(ctx context.Context, id string) (Exit, error)
	List(ctx context.Context, employeeID string) ([]Exit, error)
	Decide(ctx context.Context, id, status, actorUserID string) (bool, error)
	Document(ctx context.Context, id string) (File, error)
}
