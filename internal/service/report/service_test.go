package report

import (
	"context"
	"testing"
	"time"

	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/company"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/employee"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/event"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventRepo struct {
	events map[string][]event.AttendanceEvent
}

func (r *fakeEventRepo) Append(ctx context.Context, ev event.AttendanceEvent) error {
	r.events[ev.UserID] = append(r.events[ev.UserID], ev)
	return nil
}

func (r *fakeEventRepo) AppendBatch(ctx context.Context, evs []event.AttendanceEvent) error {
	for _, ev := range evs {
		r.events[ev.UserID] = append(r.events[ev.UserID], ev)
	}
	return nil
}

func (r *fakeEventRepo) ListForUser(ctx context.Context, userID string, filter event.ListEventsFilter, companyID string) ([]event.AttendanceEvent, error) {
	var out []event.AttendanceEvent
	for _, ev := range r.events[userID] {
		if ev.CompanyID != companyID {
			continue
		}
		if filter.From != nil && ev.Timestamp.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !ev.Timestamp.Before(*filter.To) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id, companyID string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id && e.CompanyID == companyID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID, companyID string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.UserID == userID && e.CompanyID == companyID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) ListActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		if e.CompanyID == companyID && e.IsActive() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) ListManagersByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}

type fakeCompanyRepo struct {
	companies []company.Company
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id string) (company.Company, error) {
	for _, c := range r.companies {
		if c.ID == id {
			return c, nil
		}
	}
	return company.Company{}, company.ErrCompanyNotFound
}

func (r *fakeCompanyRepo) ListAll(ctx context.Context) ([]company.Company, error) {
	return r.companies, nil
}

const testCompanyID = "11111111-1111-1111-1111-111111111111"

func clockIn(userID string, day time.Time, clock string) event.AttendanceEvent {
	parsed, _ := time.Parse("15:04", clock)
	ts := day.Add(time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute)
	return event.AttendanceEvent{UserID: userID, CompanyID: testCompanyID, Type: event.TypeClockIn, Timestamp: ts}
}

func newTestService(eventRepo *fakeEventRepo, empRepo *fakeEmployeeRepo) report.ReportService {
	compRepo := &fakeCompanyRepo{companies: []company.Company{{ID: testCompanyID}}}
	return NewReportService(eventRepo, empRepo, compRepo, Config{})
}

func TestGeneratePunctualityReport(t *testing.T) {
	day1 := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)
	day3 := day2.Add(24 * time.Hour)

	eventRepo := &fakeEventRepo{events: map[string][]event.AttendanceEvent{
		"user-1": {
			clockIn("user-1", day1, "07:55"), // on time
			clockIn("user-1", day2, "08:14"), // inside tolerance
			clockIn("user-1", day3, "08:45"), // late by 45 minutes
		},
	}}
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{{
		ID: "emp-1", UserID: "user-1", CompanyID: testCompanyID, FullName: "Alice",
		Role: employee.RoleEmployee, EmploymentStatus: employee.EmploymentStatusActive,
	}}}
	svc := newTestService(eventRepo, empRepo)

	got, err := svc.GeneratePunctualityReport(context.Background(), testCompanyID, report.PunctualityReportRequest{
		From: "2024-03-11", To: "2024-03-13",
	})
	require.NoError(t, err)

	assert.Equal(t, "08:00", got.StandardStartTime)
	assert.Equal(t, 15, got.ToleranceMinutes)
	require.Len(t, got.Employees, 1)

	alice := got.Employees[0]
	assert.Equal(t, 3, alice.DaysPresent)
	assert.Equal(t, 2, alice.DaysOnTime)
	assert.Equal(t, 1, alice.DaysLate)
	assert.Equal(t, 45, alice.TotalLateMinutes, "minutes counted from the standard start, not the tolerance edge")
	assert.Equal(t, 66.7, alice.PunctualityPercent)
}

func TestGeneratePunctualityReport_ExactToleranceEdgeIsOnTime(t *testing.T) {
	day := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	eventRepo := &fakeEventRepo{events: map[string][]event.AttendanceEvent{
		"user-1": {clockIn("user-1", day, "08:15")},
	}}
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{{
		ID: "emp-1", UserID: "user-1", CompanyID: testCompanyID, FullName: "Alice",
		Role: employee.RoleEmployee, EmploymentStatus: employee.EmploymentStatusActive,
	}}}
	svc := newTestService(eventRepo, empRepo)

	got, err := svc.GeneratePunctualityReport(context.Background(), testCompanyID, report.PunctualityReportRequest{
		From: "2024-03-11", To: "2024-03-11",
	})
	require.NoError(t, err)
	require.Len(t, got.Employees, 1)

	assert.Equal(t, 1, got.Employees[0].DaysOnTime)
	assert.Equal(t, 0, got.Employees[0].DaysLate)
}

func TestGeneratePunctualityReport_BreakEndIsNotAnArrival(t *testing.T) {
	day := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	// Clocked in early; the later BREAK_END must not replace the arrival.
	eventRepo := &fakeEventRepo{events: map[string][]event.AttendanceEvent{
		"user-1": {
			clockIn("user-1", day, "07:50"),
			{UserID: "user-1", CompanyID: testCompanyID, Type: event.TypeBreakStart, Timestamp: day.Add(12 * time.Hour)},
			{UserID: "user-1", CompanyID: testCompanyID, Type: event.TypeBreakEnd, Timestamp: day.Add(12*time.Hour + 30*time.Minute)},
		},
	}}
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{{
		ID: "emp-1", UserID: "user-1", CompanyID: testCompanyID, FullName: "Alice",
		Role: employee.RoleEmployee, EmploymentStatus: employee.EmploymentStatusActive,
	}}}
	svc := newTestService(eventRepo, empRepo)

	got, err := svc.GeneratePunctualityReport(context.Background(), testCompanyID, report.PunctualityReportRequest{
		From: "2024-03-11", To: "2024-03-11",
	})
	require.NoError(t, err)
	require.Len(t, got.Employees, 1)
	assert.Equal(t, 1, got.Employees[0].DaysOnTime)
}

func TestGeneratePunctualityReport_AbsentDaysExcluded(t *testing.T) {
	day := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	eventRepo := &fakeEventRepo{events: map[string][]event.AttendanceEvent{
		"user-1": {clockIn("user-1", day, "08:00")},
	}}
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{{
		ID: "emp-1", UserID: "user-1", CompanyID: testCompanyID, FullName: "Alice",
		Role: employee.RoleEmployee, EmploymentStatus: employee.EmploymentStatusActive,
	}}}
	svc := newTestService(eventRepo, empRepo)

	got, err := svc.GeneratePunctualityReport(context.Background(), testCompanyID, report.PunctualityReportRequest{
		From: "2024-03-11", To: "2024-03-15",
	})
	require.NoError(t, err)
	require.Len(t, got.Employees, 1)

	assert.Equal(t, 1, got.Employees[0].DaysPresent, "days with no events are absences, not lateness")
	assert.Equal(t, 100.0, got.Employees[0].PunctualityPercent)
}

func TestGeneratePunctualityReport_InvalidRange(t *testing.T) {
	svc := newTestService(&fakeEventRepo{events: map[string][]event.AttendanceEvent{}}, &fakeEmployeeRepo{})

	_, err := svc.GeneratePunctualityReport(context.Background(), testCompanyID, report.PunctualityReportRequest{
		From: "2024-03-15", To: "2024-03-11",
	})
	assert.Error(t, err)
}
