package overtime

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/company"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/employee"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/event"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/notification"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventRepo struct {
	mu      sync.Mutex
	events  map[string][]event.AttendanceEvent // keyed by userID
	failFor map[string]error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:  make(map[string][]event.AttendanceEvent),
		failFor: make(map[string]error),
	}
}

func (r *fakeEventRepo) Append(ctx context.Context, ev event.AttendanceEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[ev.UserID] = append(r.events[ev.UserID], ev)
	return nil
}

func (r *fakeEventRepo) AppendBatch(ctx context.Context, evs []event.AttendanceEvent) error {
	for _, ev := range evs {
		if err := r.Append(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeEventRepo) ListForUser(ctx context.Context, userID string, filter event.ListEventsFilter, companyID string) ([]event.AttendanceEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failFor[userID]; err != nil {
		return nil, err
	}
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
	var out []employee.Employee
	for _, e := range r.employees {
		if e.CompanyID == companyID && e.IsActive() && (e.Role == employee.RoleManager || e.Role == employee.RoleAdmin) {
			out = append(out, e)
		}
	}
	return out, nil
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

type fakeNotifier struct {
	mu     sync.Mutex
	queued []notification.CreateNotificationRequest
}

func (n *fakeNotifier) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.queued = append(n.queued, req)
	return nil
}

func (n *fakeNotifier) GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	return &notification.NotificationListResponse{}, nil
}

func (n *fakeNotifier) MarkAsRead(ctx context.Context, userID string, ids []string) error {
	return nil
}

func (n *fakeNotifier) Subscribe(userID string) (<-chan sse.Event, func()) {
	ch := make(chan sse.Event)
	return ch, func() {}
}

func (n *fakeNotifier) Stop() {}

func (n *fakeNotifier) forRecipient(userID string) []notification.CreateNotificationRequest {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notification.CreateNotificationRequest
	for _, req := range n.queued {
		if req.RecipientID == userID {
			out = append(out, req)
		}
	}
	return out
}

const testCompanyID = "11111111-1111-1111-1111-111111111111"

var testDay = time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

func at(t *testing.T, clock string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04:05", clock+":00")
	if err != nil {
		parsed, err = time.Parse("15:04:05", clock)
		require.NoError(t, err)
	}
	return testDay.Add(time.Duration(parsed.Hour())*time.Hour +
		time.Duration(parsed.Minute())*time.Minute +
		time.Duration(parsed.Second())*time.Second)
}

func seedDay(repo *fakeEventRepo, userID string, pairs ...time.Time) {
	for i := 0; i < len(pairs); i += 2 {
		repo.events[userID] = append(repo.events[userID],
			event.AttendanceEvent{UserID: userID, CompanyID: testCompanyID, Type: event.TypeClockIn, Timestamp: pairs[i]},
			event.AttendanceEvent{UserID: userID, CompanyID: testCompanyID, Type: event.TypeClockOut, Timestamp: pairs[i+1]},
		)
	}
}

func newTestService(eventRepo *fakeEventRepo, empRepo *fakeEmployeeRepo, compRepo *fakeCompanyRepo, notifier notification.Service, nowAt time.Time) *OvertimeServiceImpl {
	svc := NewOvertimeService(eventRepo, empRepo, compRepo, notifier, Config{}).(*OvertimeServiceImpl)
	svc.now = func() time.Time { return nowAt }
	return svc
}

func activeEmployee(id, userID, name string) employee.Employee {
	return employee.Employee{
		ID: id, UserID: userID, CompanyID: testCompanyID, FullName: name,
		Role: employee.RoleEmployee, EmploymentStatus: employee.EmploymentStatusActive,
	}
}

func TestGetOvertimeStats_ExactThresholdIsNotOvertime(t *testing.T) {
	eventRepo := newFakeEventRepo()
	seedDay(eventRepo, "user-1", at(t, "08:00"), at(t, "16:00")) // exactly 8h

	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{activeEmployee("emp-1", "user-1", "Alice")}}
	compRepo := &fakeCompanyRepo{companies: []company.Company{{ID: testCompanyID}}}
	svc := newTestService(eventRepo, empRepo, compRepo, nil, testDay.Add(20*time.Hour))

	stats, err := svc.GetOvertimeStats(context.Background(), testCompanyID, testDay, testDay)
	require.NoError(t, err)
	require.Len(t, stats.Employees, 1)

	assert.False(t, stats.Employees[0].IsOvertime, "exactly the threshold must not count as overtime")
	assert.Equal(t, 8.0, stats.Employees[0].WorkingHours)
	assert.Equal(t, 0.0, stats.Employees[0].OvertimeHours)
	assert.Equal(t, 0, stats.EmployeesInOvertime)
}

func TestGetOvertimeStats_SecondsOverThresholdIsOvertime(t *testing.T) {
	eventRepo := newFakeEventRepo()
	seedDay(eventRepo, "user-1", at(t, "08:00:00"), at(t, "16:00:36")) // 8h 36s

	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{activeEmployee("emp-1", "user-1", "Alice")}}
	compRepo := &fakeCompanyRepo{companies: []company.Company{{ID: testCompanyID}}}
	svc := newTestService(eventRepo, empRepo, compRepo, nil, testDay.Add(20*time.Hour))

	stats, err := svc.GetOvertimeStats(context.Background(), testCompanyID, testDay, testDay)
	require.NoError(t, err)
	require.Len(t, stats.Employees, 1)

	// Raw duration drives the flag; the rounded display can still be 0.0.
	assert.True(t, stats.Employees[0].IsOvertime)
	assert.Equal(t, 0.0, stats.Employees[0].OvertimeHours)
	assert.Equal(t, 1, stats.EmployeesInOvertime)
}

func TestGetOvertimeStats_HalfHourOvertime(t *testing.T) {
	eventRepo := newFakeEventRepo()
	// 09:00-12:00 and 12:30-18:00 = 8.5h worked.
	seedDay(eventRepo, "user-1", at(t, "09:00"), at(t, "12:00"), at(t, "12:30"), at(t, "18:00"))

	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{activeEmployee("emp-1", "user-1", "Alice")}}
	compRepo := &fakeCompanyRepo{companies: []company.Company{{ID: testCompanyID}}}
	svc := newTestService(eventRepo, empRepo, compRepo, nil, testDay.Add(23*time.Hour))

	stats, err := svc.GetOvertimeStats(context.Background(), testCompanyID, testDay, testDay)
	require.NoError(t, err)
	require.Len(t, stats.Employees, 1)

	assert.True(t, stats.Employees[0].IsOvertime)
	assert.Equal(t, 8.5, stats.Employees[0].WorkingHours)
	assert.Equal(t, 0.5, stats.Employees[0].OvertimeHours)
	assert.Equal(t, 8.5, stats.TotalWorkingHours)
	assert.Equal(t, 0.5, stats.TotalOvertimeHours)
}

func TestGetOvertimeStats_MultiDayRangeSumsPerDayOvertime(t *testing.T) {
	eventRepo := newFakeEventRepo()
	day2 := testDay.Add(24 * time.Hour)
	// Day 1: 9h worked (1h over). Day 2: 7h worked (none over).
	seedDay(eventRepo, "user-1", at(t, "08:00"), at(t, "17:00"))
	eventRepo.events["user-1"] = append(eventRepo.events["user-1"],
		event.AttendanceEvent{UserID: "user-1", CompanyID: testCompanyID, Type: event.TypeClockIn, Timestamp: day2.Add(9 * time.Hour)},
		event.AttendanceEvent{UserID: "user-1", CompanyID: testCompanyID, Type: event.TypeClockOut, Timestamp: day2.Add(16 * time.Hour)},
	)

	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{activeEmployee("emp-1", "user-1", "Alice")}}
	compRepo := &fakeCompanyRepo{companies: []company.Company{{ID: testCompanyID}}}
	svc := newTestService(eventRepo, empRepo, compRepo, nil, day2.Add(20*time.Hour))

	stats, err := svc.GetOvertimeStats(context.Background(), testCompanyID, testDay, day2)
	require.NoError(t, err)
	require.Len(t, stats.Employees, 1)

	// Overtime is per day: 16h total worked never nets days against each other.
	assert.Equal(t, 16.0, stats.Employees[0].WorkingHours)
	assert.Equal(t, 1.0, stats.Employees[0].OvertimeHours)
	assert.True(t, stats.Employees[0].IsOvertime)
}

func TestGetOvertimeStats_MidnightCrossingSessionStopsAtDayEnd(t *testing.T) {
	eventRepo := newFakeEventRepo()
	day2 := testDay.Add(24 * time.Hour)
	// Night shift 22:00-02:00: each day is folded in isolation, so the open
	// session accrues 22:00-24:00 on day 1 and the day-2 clock-out closes
	// nothing. The two post-midnight hours stay uncounted until a correction
	// splits the shift at midnight.
	eventRepo.events["user-1"] = []event.AttendanceEvent{
		{UserID: "user-1", CompanyID: testCompanyID, Type: event.TypeClockIn, Timestamp: at(t, "22:00")},
		{UserID: "user-1", CompanyID: testCompanyID, Type: event.TypeClockOut, Timestamp: day2.Add(2 * time.Hour)},
	}

	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{activeEmployee("emp-1", "user-1", "Alice")}}
	compRepo := &fakeCompanyRepo{companies: []company.Company{{ID: testCompanyID}}}
	svc := newTestService(eventRepo, empRepo, compRepo, nil, day2.Add(12*time.Hour))

	stats, err := svc.GetOvertimeStats(context.Background(), testCompanyID, testDay, day2)
	require.NoError(t, err)
	require.Len(t, stats.Employees, 1)

	assert.Equal(t, 2.0, stats.Employees[0].WorkingHours)
	assert.False(t, stats.Employees[0].IsOvertime)
	assert.False(t, stats.Employees[0].IsWorking, "the day-2 clock-out ends the live status")
	assert.Equal(t, "OFF", stats.Employees[0].Status)
}

func TestGetOvertimeStats_FailedEmployeeIsIsolated(t *testing.T) {
	eventRepo := newFakeEventRepo()
	seedDay(eventRepo, "user-1", at(t, "08:00"), at(t, "17:00"))
	seedDay(eventRepo, "user-3", at(t, "09:00"), at(t, "15:00"))
	eventRepo.failFor["user-2"] = errors.New("connection reset")

	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		activeEmployee("emp-1", "user-1", "Alice"),
		activeEmployee("emp-2", "user-2", "Bob"),
		activeEmployee("emp-3", "user-3", "Carol"),
	}}
	compRepo := &fakeCompanyRepo{companies: []company.Company{{ID: testCompanyID}}}
	svc := newTestService(eventRepo, empRepo, compRepo, nil, testDay.Add(20*time.Hour))

	stats, err := svc.GetOvertimeStats(context.Background(), testCompanyID, testDay, testDay)
	require.NoError(t, err, "one employee failing must not fail the batch")

	assert.Equal(t, 3, stats.EmployeeCount)
	assert.Equal(t, 1, stats.SkippedEmployees)
	require.Len(t, stats.Employees, 2)
	assert.Equal(t, 15.0, stats.TotalWorkingHours, "skipped employee contributes zero")
}

func TestGetOvertimeStats_UnknownCompany(t *testing.T) {
	svc := newTestService(newFakeEventRepo(), &fakeEmployeeRepo{}, &fakeCompanyRepo{}, nil, testDay)

	_, err := svc.GetOvertimeStats(context.Background(), "missing", testDay, testDay)
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestGetCurrentOvertimeStatus_OpenSessionAccruesToNow(t *testing.T) {
	eventRepo := newFakeEventRepo()
	eventRepo.events["user-1"] = []event.AttendanceEvent{
		{UserID: "user-1", CompanyID: testCompanyID, Type: event.TypeClockIn, Timestamp: at(t, "08:00")},
	}

	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{activeEmployee("emp-1", "user-1", "Alice")}}
	compRepo := &fakeCompanyRepo{companies: []company.Company{{ID: testCompanyID}}}
	svc := newTestService(eventRepo, empRepo, compRepo, nil, at(t, "17:30"))

	stats, err := svc.GetCurrentOvertimeStatus(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.Len(t, stats.Employees, 1)

	assert.True(t, stats.Employees[0].IsWorking)
	assert.Equal(t, "AT_WORK", stats.Employees[0].Status)
	assert.Equal(t, 9.5, stats.Employees[0].WorkingHours)
	assert.True(t, stats.Employees[0].IsOvertime)
	assert.Equal(t, 1.5, stats.Employees[0].OvertimeHours)
}

func TestRunSweep_RaisesAlertsOncePerDay(t *testing.T) {
	eventRepo := newFakeEventRepo()
	seedDay(eventRepo, "user-1", at(t, "08:00"), at(t, "17:30")) // 9.5h, in overtime
	seedDay(eventRepo, "user-2", at(t, "09:00"), at(t, "15:00")) // 6h, fine

	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		activeEmployee("emp-1", "user-1", "Alice"),
		activeEmployee("emp-2", "user-2", "Bob"),
		{ID: "emp-3", UserID: "user-3", CompanyID: testCompanyID, FullName: "Mila",
			Role: employee.RoleManager, EmploymentStatus: employee.EmploymentStatusActive},
	}}
	compRepo := &fakeCompanyRepo{companies: []company.Company{{ID: testCompanyID}}}
	notifier := &fakeNotifier{}
	svc := newTestService(eventRepo, empRepo, compRepo, notifier, at(t, "18:00"))

	result, err := svc.RunSweep(context.Background(), testCompanyID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Companies)
	assert.Equal(t, 3, result.Employees)
	assert.Equal(t, 1, result.InOvertime)
	assert.Equal(t, 1, result.AlertsRaised)

	require.Len(t, notifier.forRecipient("user-1"), 1, "overtime employee is alerted")
	require.Len(t, notifier.forRecipient("user-3"), 1, "manager is alerted")
	assert.Empty(t, notifier.forRecipient("user-2"))
	assert.Equal(t, notification.TypeOvertimeAlert, notifier.forRecipient("user-1")[0].Type)

	// The next sweep the same day finds the same overtime but stays silent.
	result, err = svc.RunSweep(context.Background(), testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.InOvertime)
	assert.Equal(t, 0, result.AlertsRaised)
	assert.Len(t, notifier.forRecipient("user-1"), 1)
}

func TestRunSweep_AllCompanies(t *testing.T) {
	const otherCompanyID = "22222222-2222-2222-2222-222222222222"

	eventRepo := newFakeEventRepo()
	seedDay(eventRepo, "user-1", at(t, "08:00"), at(t, "17:30"))
	eventRepo.events["user-9"] = []event.AttendanceEvent{
		{UserID: "user-9", CompanyID: otherCompanyID, Type: event.TypeClockIn, Timestamp: at(t, "09:00")},
		{UserID: "user-9", CompanyID: otherCompanyID, Type: event.TypeClockOut, Timestamp: at(t, "15:00")},
	}

	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		activeEmployee("emp-1", "user-1", "Alice"),
		{ID: "emp-9", UserID: "user-9", CompanyID: otherCompanyID, FullName: "Zed",
			Role: employee.RoleEmployee, EmploymentStatus: employee.EmploymentStatusActive},
	}}
	compRepo := &fakeCompanyRepo{companies: []company.Company{{ID: testCompanyID}, {ID: otherCompanyID}}}
	svc := newTestService(eventRepo, empRepo, compRepo, &fakeNotifier{}, at(t, "18:00"))

	result, err := svc.RunSweep(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Companies)
	assert.Equal(t, 2, result.Employees)
	assert.Equal(t, 1, result.InOvertime)
	assert.Equal(t, 0, result.SkippedInRun)
}

func TestRunSweep_InFlightCompanySkipped(t *testing.T) {
	eventRepo := newFakeEventRepo()
	empRepo := &fakeEmployeeRepo{}
	compRepo := &fakeCompanyRepo{companies: []company.Company{{ID: testCompanyID}}}
	svc := newTestService(eventRepo, empRepo, compRepo, nil, testDay)

	svc.mu.Lock()
	svc.inFlight[testCompanyID] = true
	svc.mu.Unlock()

	result, err := svc.RunSweep(context.Background(), testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SkippedInRun)
	assert.Equal(t, 0, result.Companies)
}
