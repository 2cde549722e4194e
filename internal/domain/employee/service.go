package employee

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"hrms/internal/domain/auth"
	"hrms/internal/platform/spreadsheet"
)

type Service struct {
	store  StoreAPI
	logger *zap.Logger
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, logger: zap.L().Named("employee.service")}
}

func (s *Service) List(ctx context.Context, filter Filter, limit, offset int) (ListResult, error) {
	items, total, err := s.store.List(ctx, filter, limit, offset)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Items: items, Total: total}, nil
}

func (s *Service) Get(ctx context.Context, employeeID string) (Employee, error) {
	return s.store.Get(ctx, strings.TrimSpace(employeeID))
}

// Create registers an employee under the next E-number. A login account
// is created alongside when a password is supplied.
func (s *Service) Create(ctx context.Context, input NewEmployee) (Employee, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Availability == "" {
		input.Availability = AvailabilityAvailable
	}
	if input.Role == "" {
		input.Role = auth.RoleEmployee
	}
	if !auth.IsKnownRole(input.Role) {
		return Employee{}, ErrInvalidRole
	}
	if !ValidAvailability(input.Availability) {
		return Employee{}, ErrInvalidAvailability
	}

	var hash string
	if input.Password != "" {
		if input.Email == "" {
			return Employee{}, ErrAccountNeedsEmail
		}
		var err error
		hash, err = auth.HashPassword(input.Password)
		if err != nil {
			return Employee{}, err
		}
	}

	emp, err := s.store.Create(ctx, input, hash)
	if err != nil {
		return Employee{}, err
	}
	s.logger.Info("employee created",
		zap.String("employeeId", emp.EmployeeID),
		zap.String("role", emp.Role),
		zap.Bool("account", hash != ""),
	)
	return emp, nil
}

// UpdateAvailability lets HR and PMs change anyone; employees only themselves.
func (s *Service) UpdateAvailability(ctx context.Context, user auth.UserContext, employeeID, availability string) (Employee, error) {
	if !ValidAvailability(availability) {
		return Employee{}, ErrInvalidAvailability
	}
	if !auth.CanAccessEmployee(user, auth.PermEmployeesAvailability, employeeID) {
		return Employee{}, auth.ErrForbidden
	}
	return s.store.UpdateAvailability(ctx, employeeID, availability)
}

func (s *Service) Export(ctx context.Context, w io.Writer) error {
	employees, err := s.store.ListAll(ctx)
	if err != nil {
		return err
	}
	table := spreadsheet.Table{
		Sheet:   "Employees",
		Headers: []string{"Employee ID", "Name", "Email", "Position", "Designation", "Department", "Phone", "Availability", "Hire Date", "Role"},
	}
	for _, e := range employees {
		hire := ""
		if e.HireDate != nil {
			hire = e.HireDate.Format("2006-01-02")
		}
		table.Rows = append(table.Rows, []any{e.EmployeeID, e.Name, e.Email, e.Position, e.Designation, e.Department, e.PhoneNumber, e.Availability, hire, e.Role})
	}
	if err := spreadsheet.Write(w, table); err != nil {
		return fmt.Errorf("write employee export: %w", err)
	}
	return nil
}
