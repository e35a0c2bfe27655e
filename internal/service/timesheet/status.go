package timesheet

import (
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/event"
)

// Status is the discrete attendance state shown on dashboards and used by
// overtime alerts.
type Status string

const (
	StatusAtWork         Status = "AT_WORK"
	StatusOnBreak        Status = "ON_BREAK"
	StatusOnPersonal     Status = "ON_PERSONAL"
	StatusOnBusinessTrip Status = "ON_BUSINESS_TRIP"
	StatusOff            Status = "OFF"
)

var statusByLastEvent = map[event.EventType]Status{
	event.TypeClockIn:           StatusAtWork,
	event.TypeBreakEnd:          StatusAtWork,
	event.TypePersonalEnd:       StatusAtWork,
	event.TypeBusinessTripStart: StatusOnBusinessTrip,
	event.TypeBreakStart:        StatusOnBreak,
	event.TypePersonalStart:     StatusOnPersonal,
	event.TypeClockOut:          StatusOff,
	event.TypeBusinessTripEnd:   StatusOff,
}

// CurrentStatus derives the discrete status from the most recent event type.
// Pure function of the last event: paused states (break, personal) report
// their own status rather than OFF, everything else follows the start/stop
// classification. An empty timeline is OFF.
func CurrentStatus(lastEvent *event.AttendanceEvent) Status {
	if lastEvent == nil {
		return StatusOff
	}
	if s, ok := statusByLastEvent[lastEvent.Type]; ok {
		return s
	}
	return StatusOff
}

// IsWorkingStatus reports whether a status counts as working time. Must stay
// consistent with the reconstructor's working flag: the start-class statuses
// are working, the rest are not.
func (s Status) IsWorkingStatus() bool {
	return s == StatusAtWork || s == StatusOnBusinessTrip
}
