package salary

import "strings"

// TaxRate returns the percentage applied to base salary: the explicit
// rate when given, else 6% for filers and 12% for non-filers.
func TaxRate(explicit OptionalAmount, isTaxFiler bool) float64 {
	if explicit.Valid {
		return explicit.Value
	}
	if isTaxFiler {
		return DefaultTaxRateFiler
	}
	return DefaultTaxRateNonFiler
}

func ProvidentFundRate(explicit OptionalAmount) float64 {
	if explicit.Valid {
		return explicit.Value
	}
	return DefaultProvidentFundRate
}

// Compute derives every amount of a salary record from its inputs.
// Client-supplied tax and provident fund figures are never trusted.
func Compute(in Input) (Breakdown, error) {
	extraAllowances, err := namedExtras(in.ExtraAllowances)
	if err != nil {
		return Breakdown{}, err
	}
	extraDeductions, err := namedExtras(in.ExtraDeductions)
	if err != nil {
		return Breakdown{}, err
	}

	base := round2(in.BaseSalary.Float())
	taxRate := TaxRate(in.TaxRate, bool(in.IsTaxFiler))
	pfRate := ProvidentFundRate(in.ProvidentFundRate)

	out := Breakdown{
		BaseSalary:        base,
		IsTaxFiler:        bool(in.IsTaxFiler),
		TaxRate:           taxRate,
		ProvidentFundRate: pfRate,
		Allowances: Allowances{
			HouseRentAllowance:         round2(in.HouseRentAllowance.Float()),
			MedicalAllowance:           round2(in.MedicalAllowance.Float()),
			FuelAllowance:              round2(in.FuelAllowance.Float()),
			ChildrenEducationAllowance: round2(in.ChildrenEducationAllowance.Float()),
			UtilitiesAllowance:         round2(in.UtilitiesAllowance.Float()),
			OtherAllowance:             round2(in.OtherAllowance.Float() + sum(extraAllowances)),
		},
		Deductions: Deductions{
			ProfessionalTax: round2(in.ProfessionalTax.Float()),
			FurtherTax:      round2(in.FurtherTax.Float()),
			Zakat:           round2(in.Zakat.Float()),
			TaxDeduction:    round2(base * taxRate / 100),
			ProvidentFund:   round2(base * pfRate / 100),
			OtherDeductions: round2(in.OtherDeductions.Float() + sum(extraDeductions)),
		},
		ExtraAllowances: extraAllowances,
		ExtraDeductions: extraDeductions,
	}

	if base < 0 || taxRate < 0 || pfRate < 0 || hasNegative(out.Allowances, out.Deductions, extraAllowances, extraDeductions) {
		return Breakdown{}, ErrNegativeAmount
	}

	out.TotalAllowances = out.Allowances.Total()
	out.TotalDeductions = out.Deductions.Total()
	out.GrossSalary = round2(base + out.TotalAllowances)
	out.NetSalary = round2(out.GrossSalary - out.TotalDeductions)
	return out, nil
}

// namedExtras drops entries without a name and enforces the per-list cap.
func namedExtras(extras []Extra) ([]ExtraItem, error) {
	out := make([]ExtraItem, 0, len(extras))
	for _, extra := range extras {
		name := strings.TrimSpace(extra.Name)
		if name == "" {
			continue
		}
		out = append(out, ExtraItem{Name: name, Value: round2(extra.Value.Float())})
	}
	if len(out) > MaxExtras {
		return nil, ErrTooManyExtras
	}
	return out, nil
}

func sum(items []ExtraItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Value
	}
	return total
}

func hasNegative(a Allowances, d Deductions, extras ...[]ExtraItem) bool {
	values := []float64{
		a.HouseRentAllowance, a.MedicalAllowance, a.FuelAllowance, a.ChildrenEducationAllowance, a.UtilitiesAllowance, a.OtherAllowance,
		d.ProfessionalTax, d.FurtherTax, d.Zakat, d.OtherDeductions,
	}
	for _, list := range extras {
		for _, item := range list {
			values = append(values, item.Value)
		}
	}
	for _, v := range values {
		if v < 0 {
			return true
		}
	}
	return false
}
