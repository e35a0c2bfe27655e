package response

import (
	"errors"
	"net/http"

	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/company"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/correction"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/employee"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/trip"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee / company domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")

	// Business trip domain errors
	case errors.Is(err, trip.ErrTripNotFound):
		NotFound(w, "Business trip not found")
	case errors.Is(err, trip.ErrTripAlreadyProcessed):
		Conflict(w, "Business trip already processed")
	case errors.Is(err, trip.ErrTripNotApproved):
		Conflict(w, "Business trip is not approved")
	case errors.Is(err, trip.ErrTripAlreadyStarted):
		Conflict(w, "Business trip already started")
	case errors.Is(err, trip.ErrTripNotInProgress):
		Conflict(w, "Business trip is not in progress")

	// Correction domain errors
	case errors.Is(err, correction.ErrCorrectionNotFound):
		NotFound(w, "Correction request not found")
	case errors.Is(err, correction.ErrCorrectionAlreadyProcessed):
		Conflict(w, "Correction request already processed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
