package notifications

import (
	"context"

	"go.uber.org/zap"
)

type Service struct {
	store  StoreAPI
	logger *zap.Logger
}

func New(store StoreAPI) *Service {
	return &Service{store: store, logger: zap.L().Named("notifications.service")}
}

// Notify stores an in-app notification. Failures are logged, never
// surfaced, so a decision is not rolled back over a missed notification.
func (s *Service) Notify(ctx context.Context, employeeID, ntype, title, body string) {
	if employeeID == "" {
		return
	}
	if err := s.store.Create(ctx, employeeID, ntype, title, body); err != nil {
		s.logger.Warn("notification create failed", zap.String("employeeId", employeeID), zap.String("type", ntype), zap.Error(err))
	}
}

// NotifyRole fans a notification out to every employee holding role.
func (s *Service) NotifyRole(ctx context.Context, role, ntype, title, body string) {
	ids, err := s.store.EmployeeIDsByRole(ctx, role)
	if err != nil {
		s.logger.Warn("notification recipients lookup failed", zap.String("role", role), zap.Error(err))
		return
	}
	for _, id := range ids {
		s.Notify(ctx, id, ntype, title, body)
	}
}

func (s *Service) List(ctx context.Context, employeeID string, limit, offset int) (ListResult, error) {
	items, err := s.store.List(ctx, employeeID, limit, offset)
	if err != nil {
		return ListResult{}, err
	}
	unread, err := s.store.CountUnread(ctx, employeeID)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Items: items, Unread: unread}, nil
}

func (s *Service) MarkRead(ctx context.Context, employeeID, notificationID string) error {
	ok, err := s.store.MarkRead(ctx, employeeID, notificationID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
