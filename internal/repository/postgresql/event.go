package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/event"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/pkg/database"
)

type eventRepository struct {
	db *database.DB
}

// NewEventRepository creates a new attendance event repository.
// The attendance_events table is append-only; there are no update or delete
// statements here on purpose.
func NewEventRepository(db *database.DB) event.EventRepository {
	return &eventRepository{db: db}
}

// Append implements event.EventRepository.
func (r *eventRepository) Append(ctx context.Context, ev event.AttendanceEvent) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (
			id, user_id, company_id, type, timestamp,
			latitude, longitude, notes, qr_verified
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := q.Exec(ctx, query,
		ev.ID,
		ev.UserID,
		ev.CompanyID,
		string(ev.Type),
		ev.Timestamp,
		ev.Latitude,
		ev.Longitude,
		ev.Notes,
		ev.QRVerified,
	)
	if err != nil {
		return fmt.Errorf("failed to append attendance event: %w", err)
	}

	return nil
}

// AppendBatch implements event.EventRepository.
func (r *eventRepository) AppendBatch(ctx context.Context, events []event.AttendanceEvent) error {
	if len(events) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(events))
	valueArgs := make([]interface{}, 0, len(events)*9)

	for i, ev := range events {
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			i*9+1, i*9+2, i*9+3, i*9+4, i*9+5, i*9+6, i*9+7, i*9+8, i*9+9))
		valueArgs = append(valueArgs,
			ev.ID, ev.UserID, ev.CompanyID, string(ev.Type), ev.Timestamp,
			ev.Latitude, ev.Longitude, ev.Notes, ev.QRVerified)
	}

	query := fmt.Sprintf(`
		INSERT INTO attendance_events (
			id, user_id, company_id, type, timestamp,
			latitude, longitude, notes, qr_verified
		) VALUES %s
	`, strings.Join(valueStrings, ", "))

	if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to append attendance events: %w", err)
	}

	return nil
}

// ListForUser implements event.EventRepository. Results are ordered by
// timestamp, then insertion order, which is the order the timeline fold
// expects.
func (r *eventRepository) ListForUser(ctx context.Context, userID string, filter event.ListEventsFilter, companyID string) ([]event.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, company_id, type, timestamp,
			   latitude, longitude, notes, qr_verified, created_at
		FROM attendance_events
		WHERE user_id = $1
		  AND company_id = $2
	`
	args := []interface{}{userID, companyID}

	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND timestamp >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND timestamp < $%d", len(args))
	}

	query += " ORDER BY timestamp ASC, created_at ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	var events []event.AttendanceEvent
	for rows.Next() {
		var ev event.AttendanceEvent
		var typ string
		if err := rows.Scan(
			&ev.ID, &ev.UserID, &ev.CompanyID, &typ, &ev.Timestamp,
			&ev.Latitude, &ev.Longitude, &ev.Notes, &ev.QRVerified, &ev.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		ev.Type = event.EventType(typ)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance events: %w", err)
	}

	return events, nil
}
