package overtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/company"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/employee"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/event"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/notification"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/overtime"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/pkg/metrics"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/service/timesheet"
	"golang.org/x/sync/errgroup"
)

// Config carries the tunables the engine itself never hardcodes.
type Config struct {
	// DailyThreshold is the working time per day beyond which an employee
	// counts as in overtime. Default 8h.
	DailyThreshold time.Duration

	// SweepConcurrency bounds the per-company fan-out of a full sweep.
	SweepConcurrency int
}

type OvertimeServiceImpl struct {
	eventRepo    event.EventRepository
	employeeRepo employee.EmployeeRepository
	companyRepo  company.CompanyRepository
	notifier     notification.Service
	cfg          Config
	now          func() time.Time

	// Per-company in-flight guard: the scheduled tick and the manual
	// run-now trigger share sweepCompany and must never overlap for the
	// same company.
	mu       sync.Mutex
	inFlight map[string]bool

	// alertedOn tracks which employees were already alerted, keyed by
	// "employeeID/YYYY-MM-DD", so a long overtime day raises one alert.
	// Process-scoped, explicitly owned by this service.
	alertedMu sync.Mutex
	alertedOn map[string]bool
}

func NewOvertimeService(
	eventRepo event.EventRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	notifier notification.Service,
	cfg Config,
) overtime.OvertimeService {
	if cfg.DailyThreshold <= 0 {
		cfg.DailyThreshold = 8 * time.Hour
	}
	if cfg.SweepConcurrency <= 0 {
		cfg.SweepConcurrency = 4
	}
	return &OvertimeServiceImpl{
		eventRepo:    eventRepo,
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		notifier:     notifier,
		cfg:          cfg,
		now:          func() time.Time { return time.Now().UTC() },
		inFlight:     make(map[string]bool),
		alertedOn:    make(map[string]bool),
	}
}

// GetOvertimeStats implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) GetOvertimeStats(ctx context.Context, companyID string, from, to time.Time) (overtime.CompanyOvertimeStats, error) {
	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		return overtime.CompanyOvertimeStats{}, fmt.Errorf("failed to resolve company %s: %w", companyID, err)
	}

	rangeStart := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)

	return s.computeCompanyStats(ctx, companyID, rangeStart, rangeEnd)
}

// GetCurrentOvertimeStatus implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) GetCurrentOvertimeStatus(ctx context.Context, companyID string) (overtime.CompanyOvertimeStats, error) {
	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		return overtime.CompanyOvertimeStats{}, fmt.Errorf("failed to resolve company %s: %w", companyID, err)
	}

	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.computeCompanyStats(ctx, companyID, dayStart, dayStart.Add(24*time.Hour))
}

// computeCompanyStats runs the reconstruction fold for every active employee
// of a company over [rangeStart, rangeEnd). A failure for one employee is
// isolated: logged, counted as skipped, excluded from aggregates.
func (s *OvertimeServiceImpl) computeCompanyStats(ctx context.Context, companyID string, rangeStart, rangeEnd time.Time) (overtime.CompanyOvertimeStats, error) {
	employees, err := s.employeeRepo.ListActiveByCompanyID(ctx, companyID)
	if err != nil {
		return overtime.CompanyOvertimeStats{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	now := s.now()
	stats := overtime.CompanyOvertimeStats{
		CompanyID:     companyID,
		From:          rangeStart.Format("2006-01-02"),
		To:            rangeEnd.Add(-time.Second).Format("2006-01-02"),
		EmployeeCount: len(employees),
		Employees:     make([]overtime.EmployeeOvertimeStat, 0, len(employees)),
		GeneratedAt:   now.Format(time.RFC3339),
	}

	var totalWorked, totalOvertime time.Duration
	for _, emp := range employees {
		stat, err := s.computeEmployeeStat(ctx, emp, rangeStart, rangeEnd, now)
		if err != nil {
			slog.Error("Overtime: employee computation failed, excluded from batch",
				"employee_id", emp.ID, "company_id", companyID, "error", err)
			metrics.ComputationFailures.Inc()
			stats.SkippedEmployees++
			continue
		}

		stats.Employees = append(stats.Employees, stat.public)
		totalWorked += stat.worked
		totalOvertime += stat.overtime
		if stat.public.IsOvertime {
			stats.EmployeesInOvertime++
		}
	}

	stats.TotalWorkingHours = timesheet.RoundHours(totalWorked)
	stats.TotalOvertimeHours = timesheet.RoundHours(totalOvertime)
	return stats, nil
}

// employeeStat pairs the display DTO with the raw durations the aggregates
// are built from.
type employeeStat struct {
	public   overtime.EmployeeOvertimeStat
	worked   time.Duration
	overtime time.Duration
}

// computeEmployeeStat reconstructs one employee's timeline per UTC day and
// applies the daily threshold to each day's raw total. Panics inside the
// fold are converted to errors so a single bad record cannot take down a
// company-wide batch.
func (s *OvertimeServiceImpl) computeEmployeeStat(ctx context.Context, emp employee.Employee, rangeStart, rangeEnd, now time.Time) (stat employeeStat, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during employee computation: %v", r)
		}
	}()

	events, err := s.eventRepo.ListForUser(ctx, emp.UserID, event.ListEventsFilter{From: &rangeStart, To: &rangeEnd}, emp.CompanyID)
	if err != nil {
		return employeeStat{}, fmt.Errorf("failed to list events: %w", err)
	}

	// Each UTC day is reconstructed in isolation. A session still open at
	// midnight accrues to its starting day up to that day's end; its stop on
	// the next day then closes nothing, so the post-midnight portion is not
	// counted until the punches are fixed through a correction.
	var worked, over time.Duration
	for day, dayEvents := range timesheet.GroupByDay(events) {
		dayStart, parseErr := time.Parse("2006-01-02", day)
		if parseErr != nil {
			continue
		}
		asOf := dayStart.Add(24 * time.Hour)
		if now.Before(asOf) {
			asOf = now
		}

		result := timesheet.Reconstruct(dayEvents, asOf)
		worked += result.TotalWorking
		if result.TotalWorking > s.cfg.DailyThreshold {
			over += result.TotalWorking - s.cfg.DailyThreshold
		}
	}

	// The live flag follows the most recent event, not the day folds: a
	// session left open on a past day must not report the employee as still
	// working after a later stop.
	status := timesheet.CurrentStatus(timesheet.LatestEvent(events))
	working := status.IsWorkingStatus()

	return employeeStat{
		public: overtime.EmployeeOvertimeStat{
			EmployeeID:    emp.ID,
			UserID:        emp.UserID,
			EmployeeName:  emp.FullName,
			WorkedMs:      worked.Milliseconds(),
			WorkingHours:  timesheet.RoundHours(worked),
			IsOvertime:    over > 0,
			OvertimeHours: timesheet.RoundHours(over),
			IsWorking:     working,
			Status:        string(status),
		},
		worked:   worked,
		overtime: over,
	}, nil
}

// RunSweep implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) RunSweep(ctx context.Context, companyID string) (overtime.SweepResult, error) {
	start := s.now()

	var result overtime.SweepResult
	if companyID != "" {
		companyResult := s.sweepCompany(ctx, companyID)
		result = companyResult
	} else {
		companies, err := s.companyRepo.ListAll(ctx)
		if err != nil {
			return overtime.SweepResult{}, fmt.Errorf("failed to list companies for sweep: %w", err)
		}

		var mu sync.Mutex
		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(s.cfg.SweepConcurrency)
		for _, c := range companies {
			c := c
			g.Go(func() error {
				companyResult := s.sweepCompany(gCtx, c.ID)
				mu.Lock()
				defer mu.Unlock()
				result.Companies += companyResult.Companies
				result.Employees += companyResult.Employees
				result.InOvertime += companyResult.InOvertime
				result.AlertsRaised += companyResult.AlertsRaised
				result.SkippedInRun += companyResult.SkippedInRun
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return overtime.SweepResult{}, err
		}
	}

	result.DurationMillis = s.now().Sub(start).Milliseconds()
	return result, nil
}

// sweepCompany computes today's live overtime status for one company and
// raises alerts. Guarded: a sweep already in flight for the company is
// skipped and logged, never run twice concurrently.
func (s *OvertimeServiceImpl) sweepCompany(ctx context.Context, companyID string) overtime.SweepResult {
	s.mu.Lock()
	if s.inFlight[companyID] {
		s.mu.Unlock()
		slog.Info("Overtime sweep already in flight, skipped", "company_id", companyID)
		metrics.SweepRuns.WithLabelValues("skipped").Inc()
		return overtime.SweepResult{SkippedInRun: 1}
	}
	s.inFlight[companyID] = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.inFlight, companyID)
		s.mu.Unlock()
	}()

	sweepStart := time.Now()
	stats, err := s.GetCurrentOvertimeStatus(ctx, companyID)
	if err != nil {
		slog.Error("Overtime sweep failed", "company_id", companyID, "error", err)
		metrics.SweepRuns.WithLabelValues("error").Inc()
		return overtime.SweepResult{Companies: 1}
	}

	alerts := s.raiseAlerts(ctx, companyID, stats)

	metrics.SweepRuns.WithLabelValues("ok").Inc()
	metrics.SweepDuration.Observe(time.Since(sweepStart).Seconds())
	metrics.EmployeesInOvertime.WithLabelValues(companyID).Set(float64(stats.EmployeesInOvertime))

	return overtime.SweepResult{
		Companies:    1,
		Employees:    stats.EmployeeCount,
		InOvertime:   stats.EmployeesInOvertime,
		AlertsRaised: alerts,
	}
}

// raiseAlerts queues one overtime notification per newly-overtime employee
// per day, to the employee and the company's managers.
func (s *OvertimeServiceImpl) raiseAlerts(ctx context.Context, companyID string, stats overtime.CompanyOvertimeStats) int {
	if s.notifier == nil {
		return 0
	}

	day := s.now().Format("2006-01-02")
	raised := 0
	for _, emp := range stats.Employees {
		if !emp.IsOvertime {
			continue
		}

		key := emp.EmployeeID + "/" + day
		s.alertedMu.Lock()
		already := s.alertedOn[key]
		if !already {
			s.alertedOn[key] = true
		}
		s.alertedMu.Unlock()
		if already {
			continue
		}

		data := map[string]interface{}{
			"employee_id":    emp.EmployeeID,
			"date":           day,
			"working_hours":  emp.WorkingHours,
			"overtime_hours": emp.OvertimeHours,
		}

		if err := s.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
			CompanyID:   companyID,
			RecipientID: emp.UserID,
			Type:        notification.TypeOvertimeAlert,
			Title:       "Overtime",
			Message:     fmt.Sprintf("You have worked %.1f hours today", emp.WorkingHours),
			Data:        data,
		}); err != nil {
			slog.Error("Overtime: failed to queue employee alert", "employee_id", emp.EmployeeID, "error", err)
		}

		managers, err := s.employeeRepo.ListManagersByCompanyID(ctx, companyID)
		if err != nil {
			slog.Error("Overtime: failed to list managers for alert", "company_id", companyID, "error", err)
		} else {
			for _, manager := range managers {
				if manager.ID == emp.EmployeeID {
					continue
				}
				_ = s.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
					CompanyID:   companyID,
					RecipientID: manager.UserID,
					Type:        notification.TypeOvertimeAlert,
					Title:       "Employee overtime",
					Message:     fmt.Sprintf("%s has worked %.1f hours today", emp.EmployeeName, emp.WorkingHours),
					Data:        data,
				})
			}
		}

		metrics.OvertimeAlerts.Inc()
		raised++
	}
	return raised
}
