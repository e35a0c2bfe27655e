package correction

import (
	"context"
)

// CorrectionRepository defines data access for correction requests.
// All methods include companyID to prevent cross-company data access.
type CorrectionRepository interface {
	Create(ctx context.Context, c Correction) (Correction, error)
	GetByID(ctx context.Context, id string, companyID string) (Correction, error)
	Update(ctx context.Context, c Correction) error
	List(ctx context.Context, filter CorrectionFilter, companyID string) ([]Correction, int64, error)
}
