package salary

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"hrms/internal/domain/auth"
	"hrms/internal/platform/pdfdoc"
)

type Service struct {
	store  StoreAPI
	now    func() time.Time
	logger *zap.Logger
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, now: time.Now, logger: zap.L().Named("salary.service")}
}

// Preview runs the computation without persisting anything.
func (s *Service) Preview(input Input) (Breakdown, error) {
	return Compute(input)
}

func (s *Service) Create(ctx context.Context, user auth.UserContext, input Input) (Salary, error) {
	input.EmployeeID = strings.TrimSpace(input.EmployeeID)
	now := s.now()
	if input.Month == 0 {
		input.Month = int(now.Month())
	}
	if input.Year == 0 {
		input.Year = now.Year()
	}
	if input.Month < 1 || input.Month > 12 {
		return Salary{}, ErrInvalidPeriod
	}

	breakdown, err := Compute(input)
	if err != nil {
		return Salary{}, err
	}
	if _, err := s.store.EmployeeName(ctx, input.EmployeeID); err != nil {
		return Salary{}, err
	}

	record, err := s.store.Create(ctx, Salary{
		EmployeeID: input.EmployeeID,
		Month:      input.Month,
		Year:       input.Year,
		CreatedBy:  user.UserID,
		Breakdown:  breakdown,
	})
	if err != nil {
		return Salary{}, err
	}
	s.logger.Info("salary recorded",
		zap.String("employeeId", record.EmployeeID),
		zap.Int("month", record.Month),
		zap.Int("year", record.Year),
		zap.Float64("net", record.NetSalary),
	)
	return record, nil
}

func (s *Service) List(ctx context.Context, employeeID string, limit, offset int) ([]Salary, error) {
	return s.store.List(ctx, employeeID, limit, offset)
}

func (s *Service) Get(ctx context.Context, id string) (Salary, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Latest(ctx context.Context, employeeID string) (Salary, error) {
	return s.store.Latest(ctx, employeeID)
}

func (s *Service) ProvidentFundTotal(ctx context.Context, employeeID string) (float64, error) {
	total, err := s.store.ProvidentFundTotal(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	return round2(total), nil
}

func (s *Service) Allowances(ctx context.Context, employeeID string) (AllowanceView, error) {
	latest, err := s.store.Latest(ctx, employeeID)
	if err != nil {
		return AllowanceView{}, err
	}
	return AllowanceView{
		EmployeeID:      latest.EmployeeID,
		Month:           latest.Month,
		Year:            latest.Year,
		Allowances:      latest.Allowances,
		Extras:          latest.ExtraAllowances,
		TotalAllowances: latest.TotalAllowances,
	}, nil
}

func (s *Service) Deductions(ctx context.Context, employeeID string) (DeductionView, error) {
	latest, err := s.store.Latest(ctx, employeeID)
	if err != nil {
		return DeductionView{}, err
	}
	return DeductionView{
		EmployeeID:      latest.EmployeeID,
		Month:           latest.Month,
		Year:            latest.Year,
		Deductions:      latest.Deductions,
		Extras:          latest.ExtraDeductions,
		TotalDeductions: latest.TotalDeductions,
	}, nil
}

func (s *Service) WritePayslip(w io.Writer, record Salary) error {
	allowances := []pdfdoc.Field{
		{Label: "House rent", Value: pdfdoc.Money(record.Allowances.HouseRentAllowance)},
		{Label: "Medical", Value: pdfdoc.Money(record.Allowances.MedicalAllowance)},
		{Label: "Fuel", Value: pdfdoc.Money(record.Allowances.FuelAllowance)},
		{Label: "Children education", Value: pdfdoc.Money(record.Allowances.ChildrenEducationAllowance)},
		{Label: "Utilities", Value: pdfdoc.Money(record.Allowances.UtilitiesAllowance)},
		{Label: "Other", Value: pdfdoc.Money(record.Allowances.OtherAllowance)},
		{Label: "Total allowances", Value: pdfdoc.Money(record.TotalAllowances)},
	}
	deductions := []pdfdoc.Field{
		{Label: "Professional tax", Value: pdfdoc.Money(record.Deductions.ProfessionalTax)},
		{Label: "Further tax", Value: pdfdoc.Money(record.Deductions.FurtherTax)},
		{Label: "Zakat", Value: pdfdoc.Money(record.Deductions.Zakat)},
		{Label: fmt.Sprintf("Income tax (%.2f%%)", record.TaxRate), Value: pdfdoc.Money(record.Deductions.TaxDeduction)},
		{Label: fmt.Sprintf("Provident fund (%.2f%%)", record.ProvidentFundRate), Value: pdfdoc.Money(record.Deductions.ProvidentFund)},
		{Label: "Other", Value: pdfdoc.Money(record.Deductions.OtherDeductions)},
		{Label: "Total deductions", Value: pdfdoc.Money(record.TotalDeductions)},
	}
	return pdfdoc.Render(w, pdfdoc.Document{
		Title:    "Payslip",
		Subtitle: fmt.Sprintf("%s (%s) - %s %d", record.EmployeeName, record.EmployeeID, time.Month(record.Month), record.Year),
		Sections: []pdfdoc.Section{
			{Fields: []pdfdoc.Field{{Label: "Base salary", Value: pdfdoc.Money(record.BaseSalary)}}},
			{Heading: "Allowances", Fields: allowances},
			{Heading: "Deductions", Fields: deductions},
			{Heading: "Summary", Fields: []pdfdoc.Field{
				{Label: "Gross salary", Value: pdfdoc.Money(record.GrossSalary)},
				{Label: "Net salary", Value: pdfdoc.Money(record.NetSalary)},
			}},
		},
	})
}
