package correction

import "errors"

// Correction domain errors
var (
	ErrCorrectionNotFound         = errors.New("correction request not found")
	ErrCorrectionAlreadyProcessed = errors.New("correction request has already been approved or rejected")
)
