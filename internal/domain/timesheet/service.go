package timesheet

import (
	"context"

	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/event"
)

// TimesheetService is the live edge of the attendance engine: it records new
// clock actions and answers "what is this person doing right now".
type TimesheetService interface {
	// RecordEvent validates and appends a single clock action.
	RecordEvent(ctx context.Context, companyID string, req event.CreateEventRequest) (event.EventResponse, error)

	// ListEvents returns a user's raw events, optionally range-bound.
	ListEvents(ctx context.Context, companyID string, userID string, filter event.ListEventsFilter) (ListEventsResponse, error)

	// GetLiveStatus reconstructs today's timeline for one user and derives
	// the discrete status plus elapsed working time as of now.
	GetLiveStatus(ctx context.Context, companyID string, userID string) (LiveStatusResponse, error)
}
