package trip

import (
	"context"
)

// TripRepository defines data access for business trips.
// All methods include companyID to prevent cross-company data access.
type TripRepository interface {
	Create(ctx context.Context, t BusinessTrip) (BusinessTrip, error)
	GetByID(ctx context.Context, id string, companyID string) (BusinessTrip, error)
	Update(ctx context.Context, t BusinessTrip) error
	List(ctx context.Context, filter TripFilter, companyID string) ([]BusinessTrip, int64, error)
}
