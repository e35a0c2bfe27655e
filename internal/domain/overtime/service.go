package overtime

import (
	"context"
	"time"
)

// OvertimeService is the batch side of the attendance engine: per-employee
// working time against the configurable daily threshold, aggregated per
// company, plus the periodic sweep that raises overtime alerts.
type OvertimeService interface {
	// GetOvertimeStats computes per-employee and aggregate stats for the
	// inclusive [from, to] date range.
	GetOvertimeStats(ctx context.Context, companyID string, from, to time.Time) (CompanyOvertimeStats, error)

	// GetCurrentOvertimeStatus computes today's live stats for a company.
	GetCurrentOvertimeStatus(ctx context.Context, companyID string) (CompanyOvertimeStats, error)

	// RunSweep executes the overtime sweep for one company, or for every
	// company when companyID is empty. A company whose sweep is already in
	// flight is skipped, never run twice concurrently.
	RunSweep(ctx context.Context, companyID string) (SweepResult, error)
}
