package leave

import "context"

type StoreAPI interface {
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	CreateRequest(ctx context.Context, req Request) (Request, error)
	GetRequest(ctx context.Context, id string) (Request, error)
	ListRequests(ctx context.Context, filter Filter, limit, offset int) (RequestListResult, error)
	// SaveDecision applies Decide to the stored request atomically and
	// returns the request before and after the decision.
	SaveDecision(ctx context.Context, id, approver, status, reason, actorUserID string) (before, after Request, err error)
	DaysByStatus(ctx context.Context, employeeID string, year int) (approved, pending float64, err error)
}
