package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/employee"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a new employee repository.
func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, user_id, company_id, full_name, email, position, role,
	employment_status, created_at, updated_at, deleted_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var role, status string
	err := row.Scan(
		&emp.ID, &emp.UserID, &emp.CompanyID, &emp.FullName, &emp.Email, &emp.Position, &role,
		&status, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	emp.Role = employee.Role(role)
	emp.EmploymentStatus = employee.EmploymentStatus(status)
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE id = $1
		  AND company_id = $2
		  AND deleted_at IS NULL
	`, employeeColumns)

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByUserID(ctx context.Context, userID string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE user_id = $1
		  AND company_id = $2
		  AND deleted_at IS NULL
	`, employeeColumns)

	emp, err := scanEmployee(q.QueryRow(ctx, query, userID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by user: %w", err)
	}

	return emp, nil
}

// ListActiveByCompanyID implements employee.EmployeeRepository.
func (r *employeeRepository) ListActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE company_id = $1
		  AND employment_status = $2
		  AND deleted_at IS NULL
		ORDER BY full_name ASC
	`, employeeColumns)

	return r.list(ctx, query, companyID, string(employee.EmploymentStatusActive))
}

// ListManagersByCompanyID implements employee.EmployeeRepository.
func (r *employeeRepository) ListManagersByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE company_id = $1
		  AND employment_status = $2
		  AND role IN ('manager', 'admin')
		  AND deleted_at IS NULL
		ORDER BY full_name ASC
	`, employeeColumns)

	return r.list(ctx, query, companyID, string(employee.EmploymentStatusActive))
}

func (r *employeeRepository) list(ctx context.Context, query string, args ...interface{}) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}

	return employees, nil
}
