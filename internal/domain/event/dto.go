package event

import (
	"time"

	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/pkg/validator"
)

// CreateEventRequest records a single clock action for an employee.
// Timestamp is optional; when omitted the server time is used.
type CreateEventRequest struct {
	UserID     string   `json:"user_id"`
	Type       string   `json:"type"`
	Timestamp  *string  `json:"timestamp,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
	QRVerified bool     `json:"qr_verified"`
}

func (r CreateEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id is required"})
	} else if !validator.IsValidUUID(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id must be a valid UUID"})
	}

	if !EventType(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be one of the known attendance event types"})
	}

	if r.Timestamp != nil && *r.Timestamp != "" {
		if _, ok := validator.IsValidDateTime(*r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "timestamp must be RFC3339"})
		}
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude and longitude must be provided together"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParsedTimestamp returns the requested event time, or now when unset.
func (r CreateEventRequest) ParsedTimestamp(now time.Time) time.Time {
	if r.Timestamp == nil || *r.Timestamp == "" {
		return now
	}
	t, ok := validator.IsValidDateTime(*r.Timestamp)
	if !ok {
		return now
	}
	return t.UTC()
}

// ListEventsFilter narrows an event listing to an optional half-open
// [From, To) time range.
type ListEventsFilter struct {
	From *time.Time
	To   *time.Time
}

// EventResponse is the wire representation of a persisted event.
type EventResponse struct {
	ID         string   `json:"id"`
	UserID     string   `json:"user_id"`
	Type       string   `json:"type"`
	Timestamp  string   `json:"timestamp"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
	QRVerified bool     `json:"qr_verified"`
	CreatedAt  string   `json:"created_at"`
}

// ToResponse maps a persisted event to its wire representation.
func ToResponse(ev AttendanceEvent) EventResponse {
	return EventResponse{
		ID:         ev.ID,
		UserID:     ev.UserID,
		Type:       string(ev.Type),
		Timestamp:  ev.Timestamp.UTC().Format(time.RFC3339),
		Latitude:   ev.Latitude,
		Longitude:  ev.Longitude,
		Notes:      ev.Notes,
		QRVerified: ev.QRVerified,
		CreatedAt:  ev.CreatedAt.UTC().Format(time.RFC3339),
	}
}
