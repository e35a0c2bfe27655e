package trip

import (
	"time"
)

type TripStatus string

const (
	StatusPending    TripStatus = "pending"
	StatusApproved   TripStatus = "approved"
	StatusRejected   TripStatus = "rejected"
	StatusInProgress TripStatus = "in_progress"
	StatusCompleted  TripStatus = "completed"
)

// BusinessTrip is the approval workflow around a trip. The trip itself never
// holds working time; starting and ending an approved trip append
// BUSINESS_TRIP_START / BUSINESS_TRIP_END events to the timeline, and the
// engine counts trip time exactly like clocked-in time.
type BusinessTrip struct {
	ID              string
	CompanyID       string
	EmployeeID      string
	Destination     string
	Purpose         *string
	StartDate       time.Time
	EndDate         time.Time
	Status          TripStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	StartedAt       *time.Time
	EndedAt         *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	EmployeeName *string
}
