package overtime

// EmployeeOvertimeStat is one employee's derived working time for a day or
// range. WorkedMs carries the raw value used for threshold comparisons;
// the hour fields are rounded for display only.
type EmployeeOvertimeStat struct {
	EmployeeID    string  `json:"employee_id"`
	UserID        string  `json:"user_id"`
	EmployeeName  string  `json:"employee_name"`
	WorkedMs      int64   `json:"worked_ms"`
	WorkingHours  float64 `json:"working_hours"`
	IsOvertime    bool    `json:"is_overtime"`
	OvertimeHours float64 `json:"overtime_hours"`
	IsWorking     bool    `json:"is_working"`
	Status        string  `json:"status,omitempty"`
}

// CompanyOvertimeStats aggregates a sweep or a stats query across the active
// employees of one company.
type CompanyOvertimeStats struct {
	CompanyID           string                 `json:"company_id"`
	From                string                 `json:"from"`
	To                  string                 `json:"to"`
	TotalWorkingHours   float64                `json:"total_working_hours"`
	TotalOvertimeHours  float64                `json:"total_overtime_hours"`
	EmployeesInOvertime int                    `json:"employees_in_overtime"`
	EmployeeCount       int                    `json:"employee_count"`
	SkippedEmployees    int                    `json:"skipped_employees"`
	Employees           []EmployeeOvertimeStat `json:"employees"`
	GeneratedAt         string                 `json:"generated_at"`
}

// SweepResult summarizes one overtime sweep invocation.
type SweepResult struct {
	Companies      int   `json:"companies"`
	Employees      int   `json:"employees"`
	InOvertime     int   `json:"in_overtime"`
	AlertsRaised   int   `json:"alerts_raised"`
	SkippedInRun   int   `json:"skipped_companies"`
	DurationMillis int64 `json:"duration_ms"`
}
