package correction

import (
	"time"

	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/event"
)

type CorrectionStatus string

const (
	StatusPending  CorrectionStatus = "pending"
	StatusApproved CorrectionStatus = "approved"
	StatusRejected CorrectionStatus = "rejected"
)

// Correction is a request to fix a missed or wrong punch. History is never
// edited: approval appends a new event with the requested timestamp, and the
// correction record keeps the audit trail of who approved it and why.
type Correction struct {
	ID              string
	CompanyID       string
	EmployeeID      string
	UserID          string
	EventType       event.EventType
	RequestedTime   time.Time
	Reason          string
	Status          CorrectionStatus
	ReviewedBy      *string
	ReviewedAt      *time.Time
	RejectionReason *string
	AppendedEventID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	EmployeeName *string
}
