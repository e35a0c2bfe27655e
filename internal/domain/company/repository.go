package company

import (
	"context"
)

// CompanyRepository defines data access for companies.
type CompanyRepository interface {
	// GetByID retrieves a company by ID.
	GetByID(ctx context.Context, id string) (Company, error)

	// ListAll returns every non-deleted company. Used by the overtime sweep
	// when no single company is targeted.
	ListAll(ctx context.Context) ([]Company, error)
}
