package event

import (
	"time"
)

// EventType is the closed set of attendance actions an employee can record.
type EventType string

const (
	TypeClockIn           EventType = "CLOCK_IN"
	TypeClockOut          EventType = "CLOCK_OUT"
	TypeBreakStart        EventType = "BREAK_START"
	TypeBreakEnd          EventType = "BREAK_END"
	TypePersonalStart     EventType = "PERSONAL_START"
	TypePersonalEnd       EventType = "PERSONAL_END"
	TypeBusinessTripStart EventType = "BUSINESS_TRIP_START"
	TypeBusinessTripEnd   EventType = "BUSINESS_TRIP_END"
)

// AllEventTypes returns every recordable event type.
func AllEventTypes() []EventType {
	return []EventType{
		TypeClockIn,
		TypeClockOut,
		TypeBreakStart,
		TypeBreakEnd,
		TypePersonalStart,
		TypePersonalEnd,
		TypeBusinessTripStart,
		TypeBusinessTripEnd,
	}
}

// Class partitions event types into the two halves of a working interval.
// Every duplicate-event and ordering rule in the timeline fold keys off this
// single table, not per-function switches.
type Class int

const (
	ClassNeutral Class = iota // unknown types never open or close a session
	ClassStart                // begins or resumes a working interval
	ClassStop                 // ends a working interval
)

var eventClasses = map[EventType]Class{
	TypeClockIn:           ClassStart,
	TypeBreakEnd:          ClassStart,
	TypePersonalEnd:       ClassStart,
	TypeBusinessTripStart: ClassStart,
	TypeClockOut:          ClassStop,
	TypeBreakStart:        ClassStop,
	TypePersonalStart:     ClassStop,
	TypeBusinessTripEnd:   ClassStop,
}

// Class returns the interval classification of the event type.
func (t EventType) Class() Class {
	return eventClasses[t]
}

// Valid reports whether t belongs to the closed event-type set.
func (t EventType) Valid() bool {
	_, ok := eventClasses[t]
	return ok
}

// AttendanceEvent is an immutable fact in the per-user attendance timeline.
// Events are created exactly once and never updated; corrections append new
// events instead of editing history.
type AttendanceEvent struct {
	ID         string
	UserID     string
	CompanyID  string
	Type       EventType
	Timestamp  time.Time
	Latitude   *float64
	Longitude  *float64
	Notes      *string
	QRVerified bool
	CreatedAt  time.Time
}
