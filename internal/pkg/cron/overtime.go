package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/overtime"
)

// JobOvertimeSweep is the registered name of the periodic overtime sweep.
const JobOvertimeSweep = "overtime_sweep"

type OvertimeJobs struct {
	overtimeSvc overtime.OvertimeService
}

func NewOvertimeJobs(overtimeSvc overtime.OvertimeService) *OvertimeJobs {
	return &OvertimeJobs{overtimeSvc: overtimeSvc}
}

func (j *OvertimeJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob(JobOvertimeSweep, interval, j.RunOvertimeSweep)
}

// RunOvertimeSweep sweeps every company. Per-company overlap with a manual
// trigger is handled inside the service; this job only reports totals.
func (j *OvertimeJobs) RunOvertimeSweep(ctx context.Context) error {
	result, err := j.overtimeSvc.RunSweep(ctx, "")
	if err != nil {
		return err
	}

	slog.Info("Cron: overtime sweep finished",
		"companies", result.Companies,
		"employees", result.Employees,
		"in_overtime", result.InOvertime,
		"alerts", result.AlertsRaised,
		"skipped_companies", result.SkippedInRun,
		"duration_ms", result.DurationMillis,
	)
	return nil
}
