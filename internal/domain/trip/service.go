package trip

import (
	"context"
)

// TripService defines business logic for the business-trip workflow.
// Approval transitions are role-gated by the caller; Start and End are the
// two operations that touch the attendance timeline.
type TripService interface {
	// Create files a new trip request in pending state.
	Create(ctx context.Context, companyID string, req CreateTripRequest) (TripResponse, error)

	// Get retrieves a single trip.
	Get(ctx context.Context, companyID string, id string) (TripResponse, error)

	// List retrieves trips with filters and pagination.
	List(ctx context.Context, companyID string, filter TripFilter) (ListTripsResponse, error)

	// Approve marks a pending trip approved.
	Approve(ctx context.Context, companyID string, id string, approverID string) (TripResponse, error)

	// Reject marks a pending trip rejected with a reason.
	Reject(ctx context.Context, companyID string, req RejectTripRequest, reviewerID string) (TripResponse, error)

	// Start transitions an approved trip to in_progress and appends a
	// BUSINESS_TRIP_START event, atomically.
	Start(ctx context.Context, companyID string, id string) (TripResponse, error)

	// End transitions an in_progress trip to completed and appends a
	// BUSINESS_TRIP_END event, atomically.
	End(ctx context.Context, companyID string, id string) (TripResponse, error)
}
