package leave

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/notifications"
)

// Notifier delivers in-app notifications.
type Notifier interface {
	Notify(ctx context.Context, employeeID, ntype, title, body string)
	NotifyRole(ctx context.Context, role, ntype, title, body string)
}

type Service struct {
	store       StoreAPI
	notifier    Notifier
	entitlement float64
	logger      *zap.Logger
}

func NewService(store StoreAPI, notifier Notifier, annualEntitlement float64) *Service {
	return &Service{
		store:       store,
		notifier:    notifier,
		entitlement: annualEntitlement,
		logger:      zap.L().Named("leave.service"),
	}
}

func (s *Service) CreateRequest(ctx context.Context, input NewRequest) (Request, error) {
	input.EmployeeID = strings.TrimSpace(input.EmployeeID)
	if !ValidType(input.LeaveType) {
		return Request{}, ErrInvalidType
	}
	days, err := CalculateDays(input.StartDate, input.EndDate)
	if err != nil {
		return Request{}, err
	}
	exists, err := s.store.EmployeeExists(ctx, input.EmployeeID)
	if err != nil {
		return Request{}, err
	}
	if !exists {
		return Request{}, ErrEmployeeNotFound
	}

	req, err := s.store.CreateRequest(ctx, Request{
		EmployeeID: input.EmployeeID,
		LeaveType:  input.LeaveType,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Days:       days,
		Reason:     strings.TrimSpace(input.Reason),
	})
	if err != nil {
		return Request{}, err
	}

	if s.notifier != nil {
		title := fmt.Sprintf("%s requested %s", req.EmployeeName, req.LeaveType)
		body := fmt.Sprintf("%s to %s (%.1f days)", req.StartDate.Format(time.DateOnly), req.EndDate.Format(time.DateOnly), req.Days)
		s.notifier.NotifyRole(ctx, auth.RoleHRManager, notifications.TypeLeaveSubmitted, title, body)
		s.notifier.NotifyRole(ctx, auth.RoleProjectManager, notifications.TypeLeaveSubmitted, title, body)
	}
	return req, nil
}

func (s *Service) ListRequests(ctx context.Context, filter Filter, limit, offset int) (RequestListResult, error) {
	return s.store.ListRequests(ctx, filter, limit, offset)
}

func (s *Service) GetRequest(ctx context.Context, id string) (Request, error) {
	return s.store.GetRequest(ctx, id)
}

// Decide records one approver's decision and returns the updated request.
func (s *Service) Decide(ctx context.Context, user auth.UserContext, id, approver, status, reason string) (Request, error) {
	if status != StatusApproved && status != StatusRejected {
		return Request{}, ErrInvalidDecision
	}
	if approver == ApproverPM && status == StatusRejected && strings.TrimSpace(reason) == "" {
		return Request{}, ErrReasonRequired
	}

	current, next, err := s.store.SaveDecision(ctx, id, approver, status, reason, user.UserID)
	if err != nil {
		return Request{}, err
	}

	s.logger.Info("leave decision recorded",
		zap.String("requestId", next.ID),
		zap.String("approver", approver),
		zap.String("decision", status),
		zap.String("status", next.Status),
	)
	if s.notifier != nil && next.Status != current.Status {
		title := fmt.Sprintf("Your %s request was %s", strings.ToLower(next.LeaveType), strings.ToLower(next.Status))
		s.notifier.Notify(ctx, next.EmployeeID, notifications.TypeLeaveDecided, title, next.RejectionReason)
	}
	return next, nil
}

func (s *Service) Balance(ctx context.Context, employeeID string, year int) (Balance, error) {
	exists, err := s.store.EmployeeExists(ctx, employeeID)
	if err != nil {
		return Balance{}, err
	}
	if !exists {
		return Balance{}, ErrEmployeeNotFound
	}
	approved, pending, err := s.store.DaysByStatus(ctx, employeeID, year)
	if err != nil {
		return Balance{}, err
	}
	return Balance{
		EmployeeID:  employeeID,
		Year:        year,
		Entitlement: s.entitlement,
		Used:        approved,
		Pending:     pending,
		Remaining:   s.entitlement - approved,
	}, nil
}
