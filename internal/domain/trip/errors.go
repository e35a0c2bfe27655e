package trip

import "errors"

// Business trip domain errors
var (
	ErrTripNotFound         = errors.New("business trip not found")
	ErrTripAlreadyProcessed = errors.New("business trip has already been approved or rejected")
	ErrTripNotApproved      = errors.New("business trip is not approved")
	ErrTripAlreadyStarted   = errors.New("business trip has already been started")
	ErrTripNotInProgress    = errors.New("business trip is not in progress")
)
