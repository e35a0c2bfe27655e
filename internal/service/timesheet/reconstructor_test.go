package timesheet

import (
	"testing"
	"time"

	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, clock string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2024-03-11T"+clock+":00Z")
	require.NoError(t, err)
	return ts
}

func ev(t *testing.T, typ event.EventType, clock string) event.AttendanceEvent {
	t.Helper()
	return event.AttendanceEvent{
		ID:        string(typ) + "@" + clock,
		UserID:    "user-1",
		Type:      typ,
		Timestamp: at(t, clock),
	}
}

func TestReconstruct_EmptyTimeline(t *testing.T) {
	result := Reconstruct(nil, at(t, "12:00"))
	assert.Zero(t, result.TotalWorking)
	assert.False(t, result.IsCurrentlyWorking)
	assert.Nil(t, result.OpenSessionStart)
}

func TestReconstruct_OpenSessionAccruesToAsOf(t *testing.T) {
	events := []event.AttendanceEvent{
		ev(t, event.TypeClockIn, "09:00"),
	}

	result := Reconstruct(events, at(t, "11:30"))

	assert.Equal(t, 150*time.Minute, result.TotalWorking)
	assert.True(t, result.IsCurrentlyWorking)
	require.NotNil(t, result.OpenSessionStart)
	assert.Equal(t, at(t, "09:00"), *result.OpenSessionStart)
}

func TestReconstruct_FullDayWithBreak(t *testing.T) {
	events := []event.AttendanceEvent{
		ev(t, event.TypeClockIn, "08:00"),
		ev(t, event.TypeBreakStart, "12:00"),
		ev(t, event.TypeBreakEnd, "12:30"),
		ev(t, event.TypeClockOut, "17:00"),
	}

	result := Reconstruct(events, at(t, "23:00"))

	// 4h before the break plus 4.5h after.
	assert.Equal(t, 8*time.Hour+30*time.Minute, result.TotalWorking)
	assert.False(t, result.IsCurrentlyWorking)
	assert.Nil(t, result.OpenSessionStart)
}

func TestReconstruct_DuplicateStartIsIdempotent(t *testing.T) {
	base := []event.AttendanceEvent{
		ev(t, event.TypeClockIn, "09:00"),
		ev(t, event.TypeClockOut, "17:00"),
	}
	withDuplicate := []event.AttendanceEvent{
		ev(t, event.TypeClockIn, "09:00"),
		ev(t, event.TypeClockIn, "10:00"), // retried client request
		ev(t, event.TypeClockOut, "17:00"),
	}

	asOf := at(t, "18:00")
	assert.Equal(t, Reconstruct(base, asOf).TotalWorking, Reconstruct(withDuplicate, asOf).TotalWorking,
		"a duplicate start must not reset the open session")
}

func TestReconstruct_OrphanedStopIsNoOp(t *testing.T) {
	events := []event.AttendanceEvent{
		ev(t, event.TypeClockOut, "08:00"), // stop with no open session
		ev(t, event.TypeClockIn, "09:00"),
		ev(t, event.TypeClockOut, "10:00"),
		ev(t, event.TypeBreakStart, "10:30"), // stop after stop
	}

	result := Reconstruct(events, at(t, "12:00"))

	assert.Equal(t, time.Hour, result.TotalWorking, "stops outside a session must never subtract")
	assert.False(t, result.IsCurrentlyWorking)
}

func TestReconstruct_DayNeedNotStartWithClockIn(t *testing.T) {
	// A break-end from an off state still begins a session (for example
	// after a correction removed the morning events).
	events := []event.AttendanceEvent{
		ev(t, event.TypeBreakEnd, "13:00"),
		ev(t, event.TypeClockOut, "15:00"),
	}

	result := Reconstruct(events, at(t, "16:00"))
	assert.Equal(t, 2*time.Hour, result.TotalWorking)
}

func TestReconstruct_BusinessTripCountsAsWorking(t *testing.T) {
	events := []event.AttendanceEvent{
		ev(t, event.TypeBusinessTripStart, "08:00"),
		ev(t, event.TypeBusinessTripEnd, "12:00"),
	}

	result := Reconstruct(events, at(t, "13:00"))
	assert.Equal(t, 4*time.Hour, result.TotalWorking)
	assert.False(t, result.IsCurrentlyWorking)
}

func TestReconstruct_UnsortedInputIsResorted(t *testing.T) {
	events := []event.AttendanceEvent{
		ev(t, event.TypeClockOut, "17:00"),
		ev(t, event.TypeBreakEnd, "12:30"),
		ev(t, event.TypeClockIn, "08:00"),
		ev(t, event.TypeBreakStart, "12:00"),
	}

	result := Reconstruct(events, at(t, "23:00"))
	assert.Equal(t, 8*time.Hour+30*time.Minute, result.TotalWorking)
}

func TestReconstruct_TimestampTiesKeepInsertionOrder(t *testing.T) {
	// Stop and start at the same instant: the stop was inserted first, so
	// the session closes and a new one opens at the same timestamp.
	events := []event.AttendanceEvent{
		ev(t, event.TypeClockIn, "09:00"),
		ev(t, event.TypeBreakStart, "12:00"),
		ev(t, event.TypeBreakEnd, "12:00"),
		ev(t, event.TypeClockOut, "17:00"),
	}

	result := Reconstruct(events, at(t, "18:00"))
	assert.Equal(t, 8*time.Hour, result.TotalWorking)
	assert.False(t, result.IsCurrentlyWorking)
}

func TestReconstruct_PairedIntervalsSumExactly(t *testing.T) {
	pairs := []struct {
		in, out string
	}{
		{"06:15", "08:45"},
		{"09:00", "11:30"},
		{"12:10", "16:40"},
	}

	var events []event.AttendanceEvent
	var want time.Duration
	for _, p := range pairs {
		events = append(events,
			ev(t, event.TypeClockIn, p.in),
			ev(t, event.TypeClockOut, p.out),
		)
		want += at(t, p.out).Sub(at(t, p.in))
	}

	result := Reconstruct(events, at(t, "23:00"))
	assert.Equal(t, want, result.TotalWorking)
}

func TestReconstruct_DoesNotMutateInput(t *testing.T) {
	events := []event.AttendanceEvent{
		ev(t, event.TypeClockOut, "17:00"),
		ev(t, event.TypeClockIn, "08:00"),
	}

	_ = Reconstruct(events, at(t, "18:00"))

	assert.Equal(t, event.TypeClockOut, events[0].Type, "caller's slice must stay untouched")
}

func TestLatestEvent(t *testing.T) {
	assert.Nil(t, LatestEvent(nil))

	events := []event.AttendanceEvent{
		ev(t, event.TypeClockOut, "17:00"),
		ev(t, event.TypeClockIn, "08:00"),
	}
	last := LatestEvent(events)
	require.NotNil(t, last)
	assert.Equal(t, event.TypeClockOut, last.Type)
}

func TestRoundHours(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want float64
	}{
		{8 * time.Hour, 8.0},
		{8*time.Hour + 30*time.Minute, 8.5},
		{3 * time.Minute, 0.1}, // 0.05h rounds half-up
		{2 * time.Minute, 0.0},
		{36 * time.Second, 0.0}, // 0.01h
		{0, 0.0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, RoundHours(c.d), "RoundHours(%v)", c.d)
	}
}
