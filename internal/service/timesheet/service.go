package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/employee"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/event"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/timesheet"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/pkg/metrics"
)

type TimesheetServiceImpl struct {
	eventRepo    event.EventRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewTimesheetService(
	eventRepo event.EventRepository,
	employeeRepo employee.EmployeeRepository,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		eventRepo:    eventRepo,
		employeeRepo: employeeRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// RecordEvent implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) RecordEvent(ctx context.Context, companyID string, req event.CreateEventRequest) (event.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return event.EventResponse{}, err
	}

	// Unknown users are a client error, not a silent zero.
	if _, err := s.employeeRepo.GetByUserID(ctx, req.UserID, companyID); err != nil {
		return event.EventResponse{}, fmt.Errorf("failed to resolve employee for user %s: %w", req.UserID, err)
	}

	now := s.now()
	ev := event.AttendanceEvent{
		ID:         uuid.New().String(),
		UserID:     req.UserID,
		CompanyID:  companyID,
		Type:       event.EventType(req.Type),
		Timestamp:  req.ParsedTimestamp(now),
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Notes:      req.Notes,
		QRVerified: req.QRVerified,
		CreatedAt:  now,
	}

	if err := s.eventRepo.Append(ctx, ev); err != nil {
		return event.EventResponse{}, fmt.Errorf("failed to append attendance event: %w", err)
	}

	metrics.EventsRecorded.WithLabelValues(string(ev.Type)).Inc()
	return event.ToResponse(ev), nil
}

// ListEvents implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ListEvents(ctx context.Context, companyID string, userID string, filter event.ListEventsFilter) (timesheet.ListEventsResponse, error) {
	if _, err := s.employeeRepo.GetByUserID(ctx, userID, companyID); err != nil {
		return timesheet.ListEventsResponse{}, fmt.Errorf("failed to resolve employee for user %s: %w", userID, err)
	}

	events, err := s.eventRepo.ListForUser(ctx, userID, filter, companyID)
	if err != nil {
		return timesheet.ListEventsResponse{}, fmt.Errorf("failed to list events: %w", err)
	}

	responses := make([]event.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, event.ToResponse(ev))
	}

	return timesheet.ListEventsResponse{
		TotalCount: len(responses),
		Events:     responses,
	}, nil
}

// GetLiveStatus implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetLiveStatus(ctx context.Context, companyID string, userID string) (timesheet.LiveStatusResponse, error) {
	emp, err := s.employeeRepo.GetByUserID(ctx, userID, companyID)
	if err != nil {
		return timesheet.LiveStatusResponse{}, fmt.Errorf("failed to resolve employee for user %s: %w", userID, err)
	}

	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	events, err := s.eventRepo.ListForUser(ctx, userID, event.ListEventsFilter{From: &dayStart, To: &dayEnd}, companyID)
	if err != nil {
		return timesheet.LiveStatusResponse{}, fmt.Errorf("failed to list today's events: %w", err)
	}

	result := Reconstruct(events, now)
	last := LatestEvent(events)
	status := CurrentStatus(last)

	resp := timesheet.LiveStatusResponse{
		UserID:             userID,
		EmployeeID:         emp.ID,
		EmployeeName:       emp.FullName,
		Status:             string(status),
		IsCurrentlyWorking: result.IsCurrentlyWorking,
		WorkedTodayMs:      result.TotalWorkingMs(),
		WorkedTodayHours:   RoundHours(result.TotalWorking),
	}
	if result.OpenSessionStart != nil {
		formatted := result.OpenSessionStart.UTC().Format(time.RFC3339)
		resp.OpenSessionStart = &formatted
	}
	if last != nil {
		lastType := string(last.Type)
		lastAt := last.Timestamp.UTC().Format(time.RFC3339)
		resp.LastEventType = &lastType
		resp.LastEventAt = &lastAt
	}
	return resp, nil
}
