package employee

import (
	"context"
)

// EmployeeRepository defines data access for employees.
// All methods include companyID to prevent cross-company data access.
type EmployeeRepository interface {
	// GetByID retrieves an employee with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// GetByUserID retrieves the employee record behind a platform user.
	GetByUserID(ctx context.Context, userID string, companyID string) (Employee, error)

	// ListActiveByCompanyID returns every active employee of a company.
	// This is the population an overtime sweep iterates.
	ListActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)

	// ListManagersByCompanyID returns employees with the manager or admin
	// role, the recipients of overtime alerts.
	ListManagersByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
}
