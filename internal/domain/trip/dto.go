package trip

import (
	"time"

	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/pkg/validator"
)

type CreateTripRequest struct {
	EmployeeID  string  `json:"employee_id"`
	Destination string  `json:"destination"`
	Purpose     *string `json:"purpose,omitempty"`
	StartDate   string  `json:"start_date"` // YYYY-MM-DD
	EndDate     string  `json:"end_date"`   // YYYY-MM-DD
}

func (r CreateTripRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(r.Destination) {
		errs = append(errs, validator.ValidationError{Field: "destination", Message: "destination is required"})
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectTripRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

func (r RejectTripRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "rejection reason is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TripFilter struct {
	EmployeeID string
	Status     string
	Page       int
	Limit      int
}

type TripResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	Destination     string  `json:"destination"`
	Purpose         *string `json:"purpose,omitempty"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	StartedAt       *string `json:"started_at,omitempty"`
	EndedAt         *string `json:"ended_at,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type ListTripsResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Trips      []TripResponse `json:"trips"`
}

// ToResponse maps a trip entity to its wire representation.
func ToResponse(t BusinessTrip) TripResponse {
	format := func(ts *time.Time) *string {
		if ts == nil {
			return nil
		}
		s := ts.UTC().Format(time.RFC3339)
		return &s
	}

	var employeeName string
	if t.EmployeeName != nil {
		employeeName = *t.EmployeeName
	}

	return TripResponse{
		ID:              t.ID,
		EmployeeID:      t.EmployeeID,
		EmployeeName:    employeeName,
		Destination:     t.Destination,
		Purpose:         t.Purpose,
		StartDate:       t.StartDate.Format("2006-01-02"),
		EndDate:         t.EndDate.Format("2006-01-02"),
		Status:          string(t.Status),
		ApprovedBy:      t.ApprovedBy,
		ApprovedAt:      format(t.ApprovedAt),
		RejectionReason: t.RejectionReason,
		StartedAt:       format(t.StartedAt),
		EndedAt:         format(t.EndedAt),
		CreatedAt:       t.CreatedAt.UTC().Format(time.RFC3339),
	}
}
