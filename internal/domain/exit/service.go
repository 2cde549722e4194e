package exit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/notifications"
	"hrms/internal/domain/salary"
	"hrms/internal/platform/pdfdoc"
)

// SalarySource supplies the figures a final settlement is based on.
type SalarySource interface {
	Latest(ctx context.Context, employeeID string) (salary.Salary, error)
	ProvidentFundTotal(ctx context.Context, employeeID string) (float64, error)
}

type Sealer interface {
	Seal(plain []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

type Notifier interface {
	Notify(ctx context.Context, employeeID, ntype, title, body string)
	NotifyRole(ctx context.Context, role, ntype, title, body string)
}

type Service struct {
	store    StoreAPI
	salaries SalarySource
	sealer   Sealer
	notifier Notifier
	logger   *zap.Logger
}

func NewService(store StoreAPI, salaries SalarySource, sealer Sealer, notifier Notifier) *Service {
	return &Service{
		store:    store,
		salaries: salaries,
		sealer:   sealer,
		notifier: notifier,
		logger:   zap.L().Named("exit.service"),
	}
}

func (s *Service) Create(ctx context.Context, input NewExit) (Exit, error) {
	input.EmployeeID = strings.TrimSpace(input.EmployeeID)
	if !ValidType(input.ExitType) {
		return Exit{}, ErrInvalidType
	}
	if input.ExitDate.IsZero() {
		return Exit{}, ErrDateRequired
	}
	hasDocument := input.Document != nil && len(input.Document.Data) > 0
	if hasDocument && input.ExitType != TypeResignation {
		return Exit{}, ErrDocumentNotAllowed
	}
	exists, err := s.store.EmployeeExists(ctx, input.EmployeeID)
	if err != nil {
		return Exit{}, err
	}
	if !exists {
		return Exit{}, ErrEmployeeNotFound
	}

	remaining, providentFund, err := s.settlement(ctx, input.EmployeeID, input.ExitDate)
	if err != nil {
		return Exit{}, err
	}

	var document *File
	if hasDocument {
		sealed, err := s.sealer.Seal(input.Document.Data)
		if err != nil {
			return Exit{}, err
		}
		document = &File{Name: input.Document.Name, ContentType: input.Document.ContentType, Data: sealed}
	}

	x, err := s.store.Create(ctx, Exit{
		EmployeeID:      input.EmployeeID,
		ExitType:        input.ExitType,
		ExitDate:        input.ExitDate,
		Reason:          strings.TrimSpace(input.Reason),
		RemainingSalary: remaining,
		ProvidentFund:   providentFund,
	}, document)
	if err != nil {
		return Exit{}, err
	}
	s.logger.Info("exit processed",
		zap.String("employeeId", x.EmployeeID),
		zap.String("type", x.ExitType),
		zap.Float64("remainingSalary", x.RemainingSalary),
		zap.Float64("providentFund", x.ProvidentFund),
	)
	if s.notifier != nil {
		s.notifier.NotifyRole(ctx, auth.RoleHRManager, notifications.TypeExitSubmitted,
			fmt.Sprintf("%s: %s on %s", x.EmployeeName, x.ExitType, x.ExitDate.Format(time.DateOnly)), x.Reason)
	}
	return x, nil
}

func (s *Service) settlement(ctx context.Context, employeeID string, exitDate time.Time) (float64, float64, error) {
	var net float64
	latest, err := s.salaries.Latest(ctx, employeeID)
	switch {
	case err == nil:
		net = latest.NetSalary
	case !errors.Is(err, salary.ErrNotFound):
		return 0, 0, err
	}
	providentFund, err := s.salaries.ProvidentFundTotal(ctx, employeeID)
	if err != nil {
		return 0, 0, err
	}
	return RemainingSalary(net, exitDate), providentFund, nil
}

func (s *Service) List(ctx context.Context, employeeID string) ([]Exit, error) {
	return s.store.List(ctx, employeeID)
}

func (s *Service) Get(ctx context.Context, id string) (Exit, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Decide(ctx context.Context, user auth.UserContext, id, status string) (Exit, error) {
	if status != StatusApproved && status != StatusRejected {
		return Exit{}, ErrInvalidDecision
	}
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return Exit{}, err
	}
	if current.ApprovalStatus != StatusPending {
		return Exit{}, ErrInvalidState
	}
	ok, err := s.store.Decide(ctx, id, status, user.UserID)
	if err != nil {
		return Exit{}, err
	}
	if !ok {
		return Exit{}, ErrInvalidState
	}
	s.logger.Info("exit decided", zap.String("exitId", id), zap.String("status", status))
	if s.notifier != nil {
		s.notifier.Notify(ctx, current.EmployeeID, notifications.TypeExitDecided,
			fmt.Sprintf("Your %s was %s", strings.ToLower(current.ExitType), strings.ToLower(status)), "")
	}
	return s.store.Get(ctx, id)
}

func (s *Service) Document(ctx context.Context, id string) (File, error) {
	f, err := s.store.Document(ctx, id)
	if err != nil {
		return File{}, err
	}
	if len(f.Data) == 0 {
		return File{}, ErrNoDocument
	}
	plain, err := s.sealer.Open(f.Data)
	if err != nil {
		return File{}, err
	}
	f.Data = plain
	if f.ContentType == "" {
		f.ContentType = "application/octet-stream"
	}
	return f, nil
}

func (s *Service) WriteReport(w io.Writer, x Exit) error {
	reason := x.Reason
	if reason == "" {
		reason = "N/A"
	}
	return pdfdoc.Render(w, pdfdoc.Document{
		Title:    "Exit Report",
		Subtitle: fmt.Sprintf("%s (%s)", x.EmployeeName, x.EmployeeID),
		Sections: []pdfdoc.Section{
			{Heading: "Exit", Fields: []pdfdoc.Field{
				{Label: "Type", Value: x.ExitType},
				{Label: "Exit date", Value: x.ExitDate.Format(time.DateOnly)},
				{Label: "Reason", Value: reason},
				{Label: "Approval status", Value: x.ApprovalStatus},
			}},
			{Heading: "Final settlement", Fields: []pdfdoc.Field{
				{Label: "Remaining salary", Value: pdfdoc.Money(x.RemainingSalary)},
				{Label: "Provident fund", Value: pdfdoc.Money(x.ProvidentFund)},
				{Label: "Total payable", Value: pdfdoc.Money(x.RemainingSalary + x.ProvidentFund)},
			}},
		},
	})
}
