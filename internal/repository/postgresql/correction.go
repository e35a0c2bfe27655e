package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/correction"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/event"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/pkg/database"
)

type correctionRepository struct {
	db *database.DB
}

// NewCorrectionRepository creates a new correction request repository.
func NewCorrectionRepository(db *database.DB) correction.CorrectionRepository {
	return &correctionRepository{db: db}
}

// Create implements correction.CorrectionRepository.
func (r *correctionRepository) Create(ctx context.Context, c correction.Correction) (correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_corrections (
			id, company_id, employee_id, user_id, event_type,
			requested_time, reason, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		c.ID, c.CompanyID, c.EmployeeID, c.UserID, string(c.EventType),
		c.RequestedTime, c.Reason, string(c.Status),
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return correction.Correction{}, fmt.Errorf("failed to create correction request: %w", err)
	}

	return c, nil
}

// GetByID implements correction.CorrectionRepository.
func (r *correctionRepository) GetByID(ctx context.Context, id string, companyID string) (correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ac.id, ac.company_id, ac.employee_id, ac.user_id, ac.event_type,
			   ac.requested_time, ac.reason, ac.status,
			   ac.reviewed_by, ac.reviewed_at, ac.rejection_reason, ac.appended_event_id,
			   ac.created_at, ac.updated_at, e.full_name
		FROM attendance_corrections ac
		JOIN employees e ON e.id = ac.employee_id
		WHERE ac.id = $1
		  AND ac.company_id = $2
	`

	c, err := scanCorrection(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return correction.Correction{}, correction.ErrCorrectionNotFound
		}
		return correction.Correction{}, fmt.Errorf("failed to get correction request: %w", err)
	}

	return c, nil
}

// Update implements correction.CorrectionRepository.
func (r *correctionRepository) Update(ctx context.Context, c correction.Correction) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_corrections
		SET status = $1,
			reviewed_by = $2,
			reviewed_at = $3,
			rejection_reason = $4,
			appended_event_id = $5,
			updated_at = NOW()
		WHERE id = $6
		  AND company_id = $7
	`

	tag, err := q.Exec(ctx, query,
		string(c.Status), c.ReviewedBy, c.ReviewedAt, c.RejectionReason,
		c.AppendedEventID, c.ID, c.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update correction request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return correction.ErrCorrectionNotFound
	}

	return nil
}

// List implements correction.CorrectionRepository.
func (r *correctionRepository) List(ctx context.Context, filter correction.CorrectionFilter, companyID string) ([]correction.Correction, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE ac.company_id = $1"
	args := []interface{}{companyID}

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where += fmt.Sprintf(" AND ac.employee_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND ac.status = $%d", len(args))
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendance_corrections ac" + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count correction requests: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT ac.id, ac.company_id, ac.employee_id, ac.user_id, ac.event_type,
			   ac.requested_time, ac.reason, ac.status,
			   ac.reviewed_by, ac.reviewed_at, ac.rejection_reason, ac.appended_event_id,
			   ac.created_at, ac.updated_at, e.full_name
		FROM attendance_corrections ac
		JOIN employees e ON e.id = ac.employee_id
		%s
		ORDER BY ac.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list correction requests: %w", err)
	}
	defer rows.Close()

	var corrections []correction.Correction
	for rows.Next() {
		c, err := scanCorrection(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan correction request: %w", err)
		}
		corrections = append(corrections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read correction requests: %w", err)
	}

	return corrections, total, nil
}

func scanCorrection(row pgx.Row) (correction.Correction, error) {
	var c correction.Correction
	var eventType, status string
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.EmployeeID, &c.UserID, &eventType,
		&c.RequestedTime, &c.Reason, &status,
		&c.ReviewedBy, &c.ReviewedAt, &c.RejectionReason, &c.AppendedEventID,
		&c.CreatedAt, &c.UpdatedAt, &c.EmployeeName,
	)
	if err != nil {
		return correction.Correction{}, err
	}
	c.EventType = event.EventType(eventType)
	c.Status = correction.CorrectionStatus(status)
	return c, nil
}
