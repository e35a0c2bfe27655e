package timesheet

import (
	"math"
	"sort"
	"time"

	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/event"
)

// Result is the outcome of one timeline reconstruction.
type Result struct {
	TotalWorking       time.Duration
	IsCurrentlyWorking bool
	OpenSessionStart   *time.Time
}

// TotalWorkingMs returns the accumulated working time in milliseconds.
func (r Result) TotalWorkingMs() int64 {
	return r.TotalWorking.Milliseconds()
}

// Reconstruct folds a user's events into total working time as of asOf.
//
// The fold is a single forward pass over the events in chronological order
// (ties keep insertion order). A start-class event opens a session only when
// none is open; a stop-class event closes the open session, if any. Duplicate
// starts and orphaned stops are therefore no-ops, which keeps retried client
// requests and malformed sequences from double counting or double
// subtracting. A session still open at the end accrues up to asOf.
//
// Input order is never trusted: the slice is copied and stable-sorted here,
// whatever the store promised.
func Reconstruct(events []event.AttendanceEvent, asOf time.Time) Result {
	sorted := sortEvents(events)

	var (
		total   time.Duration
		working bool
		start   time.Time
	)

	for _, ev := range sorted {
		switch ev.Type.Class() {
		case event.ClassStart:
			if !working {
				working = true
				start = ev.Timestamp
			}
		case event.ClassStop:
			if working {
				total += ev.Timestamp.Sub(start)
				working = false
			}
		}
	}

	result := Result{
		TotalWorking:       total,
		IsCurrentlyWorking: working,
	}
	if working {
		sessionStart := start
		result.OpenSessionStart = &sessionStart
		if asOf.After(start) {
			result.TotalWorking += asOf.Sub(start)
		}
	}
	return result
}

// LatestEvent returns the chronologically last event, or nil for an empty
// timeline. Uses the same ordering as Reconstruct.
func LatestEvent(events []event.AttendanceEvent) *event.AttendanceEvent {
	if len(events) == 0 {
		return nil
	}
	sorted := sortEvents(events)
	last := sorted[len(sorted)-1]
	return &last
}

// GroupByDay buckets events by their UTC calendar day, preserving order
// inside each bucket. Day keys are formatted YYYY-MM-DD.
func GroupByDay(events []event.AttendanceEvent) map[string][]event.AttendanceEvent {
	groups := make(map[string][]event.AttendanceEvent)
	for _, ev := range events {
		day := ev.Timestamp.UTC().Format("2006-01-02")
		groups[day] = append(groups[day], ev)
	}
	return groups
}

// RoundHours converts a duration to hours rounded half-up to one decimal.
// Display only: threshold comparisons always use the raw duration.
func RoundHours(d time.Duration) float64 {
	hours := d.Hours()
	return math.Floor(hours*10+0.5) / 10
}

func sortEvents(events []event.AttendanceEvent) []event.AttendanceEvent {
	sorted := make([]event.AttendanceEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}
