package report

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/company"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/employee"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/event"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/report"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/service/timesheet"
)

// Config carries the punctuality baseline. Zero values fall back to an
// 08:00 start with a 15 minute tolerance.
type Config struct {
	StandardStartTime string // "HH:MM"
	ToleranceMinutes  int
}

type ReportServiceImpl struct {
	eventRepo    event.EventRepository
	employeeRepo employee.EmployeeRepository
	companyRepo  company.CompanyRepository
	cfg          Config
	now          func() time.Time
}

func NewReportService(
	eventRepo event.EventRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	cfg Config,
) report.ReportService {
	if cfg.StandardStartTime == "" {
		cfg.StandardStartTime = "08:00"
	}
	if cfg.ToleranceMinutes <= 0 {
		cfg.ToleranceMinutes = 15
	}
	return &ReportServiceImpl{
		eventRepo:    eventRepo,
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		cfg:          cfg,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// GeneratePunctualityReport implements report.ReportService.
func (s *ReportServiceImpl) GeneratePunctualityReport(ctx context.Context, companyID string, req report.PunctualityReportRequest) (report.PunctualityReport, error) {
	if err := req.Validate(); err != nil {
		return report.PunctualityReport{}, err
	}
	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		return report.PunctualityReport{}, fmt.Errorf("failed to resolve company %s: %w", companyID, err)
	}

	from, _ := time.Parse("2006-01-02", req.From)
	to, _ := time.Parse("2006-01-02", req.To)
	rangeEnd := to.Add(24 * time.Hour)

	startOffset, err := parseClockOffset(s.cfg.StandardStartTime)
	if err != nil {
		return report.PunctualityReport{}, fmt.Errorf("invalid standard start time %q: %w", s.cfg.StandardStartTime, err)
	}
	tolerance := time.Duration(s.cfg.ToleranceMinutes) * time.Minute

	employees, err := s.employeeRepo.ListActiveByCompanyID(ctx, companyID)
	if err != nil {
		return report.PunctualityReport{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	out := report.PunctualityReport{
		CompanyID:         companyID,
		From:              req.From,
		To:                req.To,
		StandardStartTime: s.cfg.StandardStartTime,
		ToleranceMinutes:  s.cfg.ToleranceMinutes,
		GeneratedAt:       s.now().Format(time.RFC3339),
		Employees:         make([]report.EmployeePunctuality, 0, len(employees)),
	}

	for _, emp := range employees {
		events, err := s.eventRepo.ListForUser(ctx, emp.UserID, event.ListEventsFilter{From: &from, To: &rangeEnd}, companyID)
		if err != nil {
			slog.Error("Punctuality report: failed to list events, employee excluded",
				"employee_id", emp.ID, "company_id", companyID, "error", err)
			continue
		}

		out.Employees = append(out.Employees, punctualityFor(emp, events, startOffset, tolerance))
	}

	return out, nil
}

// punctualityFor scores one employee: per day, the earliest start-class
// event is the arrival; arrival after start + tolerance counts the day late.
func punctualityFor(emp employee.Employee, events []event.AttendanceEvent, startOffset, tolerance time.Duration) report.EmployeePunctuality {
	p := report.EmployeePunctuality{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
	}

	for day, dayEvents := range timesheet.GroupByDay(events) {
		arrival := firstArrival(dayEvents)
		if arrival == nil {
			continue
		}
		dayStart, err := time.Parse("2006-01-02", day)
		if err != nil {
			continue
		}

		p.DaysPresent++
		deadline := dayStart.Add(startOffset + tolerance)
		if arrival.After(deadline) {
			p.DaysLate++
			p.TotalLateMinutes += int(math.Ceil(arrival.Sub(dayStart.Add(startOffset)).Minutes()))
		} else {
			p.DaysOnTime++
		}
	}

	if p.DaysPresent > 0 {
		p.PunctualityPercent = math.Floor(float64(p.DaysOnTime)/float64(p.DaysPresent)*1000+0.5) / 10
	}
	return p
}

func firstArrival(events []event.AttendanceEvent) *time.Time {
	var first *time.Time
	for i := range events {
		if events[i].Type.Class() != event.ClassStart {
			continue
		}
		if first == nil || events[i].Timestamp.Before(*first) {
			ts := events[i].Timestamp
			first = &ts
		}
	}
	return first
}

func parseClockOffset(clock string) (time.Duration, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, err
	}
	return time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute, nil
}
