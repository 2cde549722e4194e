package notifications

import "context"

type StoreAPI interface {
	Create(ctx context.Context, employeeID, ntype, title, body string) error
	EmployeeIDsByRole(ctx context.Context, role string) ([]string, error)
	List(ctx context.Context, employeeID string, limit, offset int) ([]Notification, error)
	CountUnread(ctx context.Context, employeeID string) (int, error)
	MarkRead(ctx context.Context, employeeID, notificationID string) (bool, error)
}
