package correction

import (
	"time"

	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/event"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/pkg/validator"
)

type CreateCorrectionRequest struct {
	EmployeeID    string `json:"employee_id"`
	EventType     string `json:"event_type"`
	RequestedTime string `json:"requested_time"` // RFC3339
	Reason        string `json:"reason"`
}

func (r CreateCorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if !event.EventType(r.EventType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "event_type", Message: "event_type must be one of the known attendance event types"})
	}
	if _, ok := validator.IsValidDateTime(r.RequestedTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "requested_time", Message: "requested_time must be RFC3339"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectCorrectionRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

func (r RejectCorrectionRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "rejection reason is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CorrectionFilter struct {
	EmployeeID string
	Status     string
	Page       int
	Limit      int
}

type CorrectionResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	EventType       string  `json:"event_type"`
	RequestedTime   string  `json:"requested_time"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	ReviewedBy      *string `json:"reviewed_by,omitempty"`
	ReviewedAt      *string `json:"reviewed_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	AppendedEventID *string `json:"appended_event_id,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type ListCorrectionsResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	Corrections []CorrectionResponse `json:"corrections"`
}

// ToResponse maps a correction entity to its wire representation.
func ToResponse(c Correction) CorrectionResponse {
	format := func(ts *time.Time) *string {
		if ts == nil {
			return nil
		}
		s := ts.UTC().Format(time.RFC3339)
		return &s
	}

	var employeeName string
	if c.EmployeeName != nil {
		employeeName = *c.EmployeeName
	}

	return CorrectionResponse{
		ID:              c.ID,
		EmployeeID:      c.EmployeeID,
		EmployeeName:    employeeName,
		EventType:       string(c.EventType),
		RequestedTime:   c.RequestedTime.UTC().Format(time.RFC3339),
		Reason:          c.Reason,
		Status:          string(c.Status),
		ReviewedBy:      c.ReviewedBy,
		ReviewedAt:      format(c.ReviewedAt),
		RejectionReason: c.RejectionReason,
		AppendedEventID: c.AppendedEventID,
		CreatedAt:       c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
