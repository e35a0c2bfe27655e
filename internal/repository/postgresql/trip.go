package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/trip"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/pkg/database"
)

type tripRepository struct {
	db *database.DB
}

// NewTripRepository creates a new business trip repository.
func NewTripRepository(db *database.DB) trip.TripRepository {
	return &tripRepository{db: db}
}

// Create implements trip.TripRepository.
func (r *tripRepository) Create(ctx context.Context, t trip.BusinessTrip) (trip.BusinessTrip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO business_trips (
			id, company_id, employee_id, destination, purpose,
			start_date, end_date, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.ID, t.CompanyID, t.EmployeeID, t.Destination, t.Purpose,
		t.StartDate, t.EndDate, string(t.Status),
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return trip.BusinessTrip{}, fmt.Errorf("failed to create business trip: %w", err)
	}

	return t, nil
}

// GetByID implements trip.TripRepository.
func (r *tripRepository) GetByID(ctx context.Context, id string, companyID string) (trip.BusinessTrip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT bt.id, bt.company_id, bt.employee_id, bt.destination, bt.purpose,
			   bt.start_date, bt.end_date, bt.status,
			   bt.approved_by, bt.approved_at, bt.rejection_reason,
			   bt.started_at, bt.ended_at, bt.created_at, bt.updated_at,
			   e.full_name
		FROM business_trips bt
		JOIN employees e ON e.id = bt.employee_id
		WHERE bt.id = $1
		  AND bt.company_id = $2
	`

	t, err := scanTrip(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trip.BusinessTrip{}, trip.ErrTripNotFound
		}
		return trip.BusinessTrip{}, fmt.Errorf("failed to get business trip: %w", err)
	}

	return t, nil
}

// Update implements trip.TripRepository.
func (r *tripRepository) Update(ctx context.Context, t trip.BusinessTrip) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE business_trips
		SET status = $1,
			approved_by = $2,
			approved_at = $3,
			rejection_reason = $4,
			started_at = $5,
			ended_at = $6,
			updated_at = NOW()
		WHERE id = $7
		  AND company_id = $8
	`

	tag, err := q.Exec(ctx, query,
		string(t.Status), t.ApprovedBy, t.ApprovedAt, t.RejectionReason,
		t.StartedAt, t.EndedAt, t.ID, t.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update business trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return trip.ErrTripNotFound
	}

	return nil
}

// List implements trip.TripRepository.
func (r *tripRepository) List(ctx context.Context, filter trip.TripFilter, companyID string) ([]trip.BusinessTrip, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE bt.company_id = $1"
	args := []interface{}{companyID}

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where += fmt.Sprintf(" AND bt.employee_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND bt.status = $%d", len(args))
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM business_trips bt" + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count business trips: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT bt.id, bt.company_id, bt.employee_id, bt.destination, bt.purpose,
			   bt.start_date, bt.end_date, bt.status,
			   bt.approved_by, bt.approved_at, bt.rejection_reason,
			   bt.started_at, bt.ended_at, bt.created_at, bt.updated_at,
			   e.full_name
		FROM business_trips bt
		JOIN employees e ON e.id = bt.employee_id
		%s
		ORDER BY bt.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list business trips: %w", err)
	}
	defer rows.Close()

	var trips []trip.BusinessTrip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan business trip: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read business trips: %w", err)
	}

	return trips, total, nil
}

func scanTrip(row pgx.Row) (trip.BusinessTrip, error) {
	var t trip.BusinessTrip
	var status string
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.EmployeeID, &t.Destination, &t.Purpose,
		&t.StartDate, &t.EndDate, &status,
		&t.ApprovedBy, &t.ApprovedAt, &t.RejectionReason,
		&t.StartedAt, &t.EndedAt, &t.CreatedAt, &t.UpdatedAt,
		&t.EmployeeName,
	)
	if err != nil {
		return trip.BusinessTrip{}, err
	}
	t.Status = trip.TripStatus(status)
	return t, nil
}
