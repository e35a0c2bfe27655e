package event

import (
	"context"
)

// EventRepository is the append-only event store. There is no Update and no
// Delete: corrections and trip transitions append new events instead.
// All methods take companyID to prevent cross-company data access.
type EventRepository interface {
	// Append persists a single event. The caller assigns the ID and CreatedAt
	// before appending.
	Append(ctx context.Context, ev AttendanceEvent) error

	// AppendBatch persists several events atomically. Used when an approved
	// correction materializes more than one punch.
	AppendBatch(ctx context.Context, events []AttendanceEvent) error

	// ListForUser returns the user's events inside the optional [from, to)
	// range, ordered ascending by timestamp then insertion order. Callers
	// computing timelines must still re-sort defensively.
	ListForUser(ctx context.Context, userID string, filter ListEventsFilter, companyID string) ([]AttendanceEvent, error)
}
