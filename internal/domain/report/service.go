package report

import (
	"context"
)

// ReportService defines business logic for attendance reporting.
type ReportService interface {
	// GeneratePunctualityReport computes per-employee arrival punctuality
	// against the configured standard start time and tolerance window.
	GeneratePunctualityReport(ctx context.Context, companyID string, req PunctualityReportRequest) (PunctualityReport, error)
}
