package timesheet

import (
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/event"
)

// LiveStatusResponse is the dashboard view of one employee right now:
// discrete status plus elapsed working time accrued up to the query instant.
type LiveStatusResponse struct {
	UserID             string  `json:"user_id"`
	EmployeeID         string  `json:"employee_id"`
	EmployeeName       string  `json:"employee_name"`
	Status             string  `json:"status"`
	IsCurrentlyWorking bool    `json:"is_currently_working"`
	WorkedTodayMs      int64   `json:"worked_today_ms"`
	WorkedTodayHours   float64 `json:"worked_today_hours"`
	OpenSessionStart   *string `json:"open_session_start,omitempty"`
	LastEventType      *string `json:"last_event_type,omitempty"`
	LastEventAt        *string `json:"last_event_at,omitempty"`
}

// ListEventsResponse wraps an event listing.
type ListEventsResponse struct {
	TotalCount int                   `json:"total_count"`
	Events     []event.EventResponse `json:"events"`
}
