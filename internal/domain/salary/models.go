package salary

import (
	"errors"
	"time"
)

const (
	MaxExtras = 4

	DefaultTaxRateFiler      = 6.0
	DefaultTaxRateNonFiler   = 12.0
	DefaultProvidentFundRate = 5.0
)

var (
	ErrNotFound         = errors.New("salary record not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrTooManyExtras    = errors.New("at most 4 other allowances and 4 other deductions are allowed")
	ErrNegativeAmount   = errors.New("amounts must not be negative")
	ErrInvalidPeriod    = errors.New("month must be between 1 and 12")
)

// Extra is a free-form named allowance or deduction.
type Extra struct {
	Name  string `json:"name"`
	Value Amount `json:"value"`
}

type ExtraItem struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type Input struct {
	EmployeeID                 string         `json:"employeeId"`
	Month                      int            `json:"month"`
	Year                       int            `json:"year"`
	BaseSalary                 Amount         `json:"baseSalary"`
	IsTaxFiler                 Flag           `json:"isTaxFiler"`
	TaxRate                    OptionalAmount `json:"taxRate"`
	ProvidentFundRate          OptionalAmount `json:"providentFundRate"`
	HouseRentAllowance         Amount         `json:"houseRentAllowance"`
	MedicalAllowance           Amount         `json:"medicalAllowance"`
	FuelAllowance              Amount         `json:"fuelAllowance"`
	ChildrenEducationAllowance Amount         `json:"childrenEducationAllowance"`
	UtilitiesAllowance         Amount         `json:"utilitiesAllowance"`
	OtherAllowance             Amount         `json:"otherAllowance"`
	ProfessionalTax            Amount         `json:"professionalTax"`
	FurtherTax                 Amount         `json:"furtherTax"`
	Zakat                      Amount         `json:"zakat"`
	OtherDeductions            Amount         `json:"otherDeductions"`
	ExtraAllowances            []Extra        `json:"otherAllowances"`
	ExtraDeductions            []Extra        `json:"otherDeductionsList"`
}

type Allowances struct {
	HouseRentAllowance         float64 `json:"houseRentAllowance"`
	MedicalAllowance           float64 `json:"medicalAllowance"`
	FuelAllowance              float64 `json:"fuelAllowance"`
	ChildrenEducationAllowance float64 `json:"childrenEducationAllowance"`
	UtilitiesAllowance         float64 `json:"utilitiesAllowance"`
	OtherAllowance             float64 `json:"otherAllowance"`
}

func (a Allowances) Total() float64 {
	return round2(a.HouseRentAllowance + a.MedicalAllowance + a.FuelAllowance +
		a.ChildrenEducationAllowance + a.UtilitiesAllowance + a.OtherAllowance)
}

type Deductions struct {
	ProfessionalTax float64 `json:"professionalTax"`
	FurtherTax      float64 `json:"furtherTax"`
	Zakat           float64 `json:"zakat"`
	TaxDeduction    float64 `json:"taxDeduction"`
	ProvidentFund   float64 `json:"providentFund"`
	OtherDeductions float64 `json:"otherDeductions"`
}

func (d Deductions) Total() float64 {
	return round2(d.ProfessionalTax + d.FurtherTax + d.Zakat + d.TaxDeduction + d.ProvidentFund + d.OtherDeductions)
}

// Breakdown is the authoritative computation for one salary submission.
type Breakdown struct {
	BaseSalary        float64     `json:"baseSalary"`
	IsTaxFiler        bool        `json:"isTaxFiler"`
	TaxRate           float64     `json:"taxRate"`
	ProvidentFundRate float64     `json:"providentFundRate"`
	Allowances        Allowances  `json:"allowances"`
	Deductions        Deductions  `json:"deductions"`
	ExtraAllowances   []ExtraItem `json:"otherAllowances"`
	ExtraDeductions   []ExtraItem `json:"otherDeductionsList"`
	TotalAllowances   float64     `json:"totalAllowances"`
	TotalDeductions   float64     `json:"totalDeductions"`
	GrossSalary       float64     `json:"grossSalary"`
	NetSalary         float64     `json:"netSalary"`
}

type Salary struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName,omitempty"`
	Month        int       `json:"month"`
	Year         int       `json:"year"`
	CreatedBy    string    `json:"createdBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	Breakdown
}

type AllowanceView struct {
	EmployeeID      string      `json:"employeeId"`
	Month           int         `json:"month"`
	Year            int         `json:"year"`
	Allowances      Allowances  `json:"allowances"`
	Extras          []ExtraItem `json:"otherAllowances"`
	TotalAllowances float64     `json:"totalAllowances"`
}

type DeductionView struct {
	EmployeeID      string      `json:"employeeId"`
	Month           int         `json:"month"`
	Year            int         `json:"year"`
	Deductions      Deductions  `json:"deductions"`
	Extras          []ExtraItem `json:"otherDeductionsList"`
	TotalDeductions float64     `json:"totalDeductions"`
}
