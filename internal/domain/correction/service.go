package correction

import (
	"context"
)

// CorrectionService defines business logic for the correction workflow.
type CorrectionService interface {
	// Create files a correction request in pending state.
	Create(ctx context.Context, companyID string, req CreateCorrectionRequest) (CorrectionResponse, error)

	// Get retrieves a single correction request.
	Get(ctx context.Context, companyID string, id string) (CorrectionResponse, error)

	// List retrieves correction requests with filters and pagination.
	List(ctx context.Context, companyID string, filter CorrectionFilter) (ListCorrectionsResponse, error)

	// Approve appends the corrective event at the requested historical
	// timestamp and marks the request approved, atomically.
	Approve(ctx context.Context, companyID string, id string, reviewerID string) (CorrectionResponse, error)

	// Reject marks a pending request rejected with a reason.
	Reject(ctx context.Context, companyID string, req RejectCorrectionRequest, reviewerID string) (CorrectionResponse, error)
}
