package loan

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/notifications"
)

type Notifier interface {
	Notify(ctx context.Context, employeeID, ntype, title, body string)
	NotifyRole(ctx context.Context, role, ntype, title, body string)
}

type Service struct {
	store    StoreAPI
	notifier Notifier
	logger   *zap.Logger
}

func NewService(store StoreAPI, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier, logger: zap.L().Named("loan.service")}
}

func (s *Service) Create(ctx context.Context, input NewLoan) (Loan, error) {
	input.EmployeeID = strings.TrimSpace(input.EmployeeID)
	input.LoanAmount = round2(input.LoanAmount)
	input.MonthlyInstallment = round2(input.MonthlyInstallment)
	if err := ValidateNew(input); err != nil {
		return Loan{}, err
	}
	exists, err := s.store.EmployeeExists(ctx, input.EmployeeID)
	if err != nil {
		return Loan{}, err
	}
	if !exists {
		return Loan{}, ErrEmployeeNotFound
	}

	l, err := s.store.Create(ctx, Loan{
		EmployeeID:         input.EmployeeID,
		LoanAmount:         input.LoanAmount,
		MonthlyInstallment: input.MonthlyInstallment,
		Reason:             strings.TrimSpace(input.Reason),
	})
	if err != nil {
		return Loan{}, err
	}
	if s.notifier != nil {
		s.notifier.NotifyRole(ctx, auth.RoleHRManager, notifications.TypeLoanSubmitted,
			fmt.Sprintf("%s requested a loan of %.2f", l.EmployeeName, l.LoanAmount), l.Reason)
	}
	return l, nil
}

func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]Loan, error) {
	return s.store.List(ctx, "", limit, offset)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string, limit, offset int) ([]Loan, error) {
	return s.store.List(ctx, employeeID, limit, offset)
}

func (s *Service) Get(ctx context.Context, id string) (Loan, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Decide(ctx context.Context, user auth.UserContext, id, status string) (Loan, error) {
	if status != StatusApproved && status != StatusRejected {
		return Loan{}, ErrInvalidDecision
	}
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return Loan{}, err
	}
	if current.Status != StatusPending {
		return Loan{}, ErrInvalidState
	}
	ok, err := s.store.Decide(ctx, id, status, user.UserID)
	if err != nil {
		return Loan{}, err
	}
	if !ok {
		return Loan{}, ErrInvalidState
	}

	s.logger.Info("loan decided", zap.String("loanId", id), zap.String("status", status))
	if s.notifier != nil {
		s.notifier.Notify(ctx, current.EmployeeID, notifications.TypeLoanDecided,
			fmt.Sprintf("Your loan request was %s", strings.ToLower(status)), "")
	}
	return s.store.Get(ctx, id)
}

// Repay records a repayment; amount 0 means one monthly installment.
func (s *Service) Repay(ctx context.Context, user auth.UserContext, id string, amount float64) (RepaymentResult, error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return RepaymentResult{}, err
	}
	taken, _, err := ApplyRepayment(current, amount)
	if err != nil {
		return RepaymentResult{}, err
	}
	rep, err := s.store.Repay(ctx, id, taken, user.UserID)
	if err != nil {
		return RepaymentResult{}, err
	}
	updated, err := s.store.Get(ctx, id)
	if err != nil {
		return RepaymentResult{}, err
	}
	s.logger.Info("loan repayment recorded",
		zap.String("loanId", id),
		zap.Float64("amount", taken),
		zap.Float64("remaining", updated.RemainingBalance),
	)
	return RepaymentResult{Loan: updated, Repayment: rep}, nil
}
