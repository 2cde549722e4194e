package loan

import "context"

type StoreAPI interface {
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	Create(ctx context.Context, l Loan) (Loan, error)
	Get(ctx context.Context, id string) (Loan, error)
	List(ctx context.Context, employeeID string, limit, offset int) ([]Loan, error)
	// Decide moves a Pending loan to status; false when it was not Pending.
	Decide(ctx context.Context, id, status, actorUserID string) (bool, error)
	Repay(ctx context.Context, loanID string, amount float64, actorUserID string) (Repayment, error)
}
