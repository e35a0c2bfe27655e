package report

import (
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/pkg/validator"
)

// PunctualityReportRequest bounds the report to an inclusive date range.
type PunctualityReportRequest struct {
	From string `json:"from"` // YYYY-MM-DD
	To   string `json:"to"`   // YYYY-MM-DD
}

func (r PunctualityReportRequest) Validate() error {
	var errs validator.ValidationErrors

	from, okFrom := validator.IsValidDate(r.From)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be YYYY-MM-DD"})
	}
	to, okTo := validator.IsValidDate(r.To)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be YYYY-MM-DD"})
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must not be before from"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployeePunctuality is one employee's arrival record over the range.
// A day counts as late when the first start-class event lands after the
// standard start time plus the tolerance window.
type EmployeePunctuality struct {
	EmployeeID         string  `json:"employee_id"`
	EmployeeName       string  `json:"employee_name"`
	DaysPresent        int     `json:"days_present"`
	DaysOnTime         int     `json:"days_on_time"`
	DaysLate           int     `json:"days_late"`
	TotalLateMinutes   int     `json:"total_late_minutes"`
	PunctualityPercent float64 `json:"punctuality_percent"`
}

// PunctualityReport aggregates arrival punctuality for a company.
type PunctualityReport struct {
	CompanyID         string                `json:"company_id"`
	From              string                `json:"from"`
	To                string                `json:"to"`
	StandardStartTime string                `json:"standard_start_time"`
	ToleranceMinutes  int                   `json:"tolerance_minutes"`
	GeneratedAt       string                `json:"generated_at"`
	Employees         []EmployeePunctuality `json:"employees"`
}
