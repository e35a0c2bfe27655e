package trip

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/employee"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/event"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/notification"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/trip"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/pkg/database"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/repository/postgresql"
)

type TripServiceImpl struct {
	db           *database.DB
	tripRepo     trip.TripRepository
	eventRepo    event.EventRepository
	employeeRepo employee.EmployeeRepository
	notifier     notification.Service
	now          func() time.Time
}

func NewTripService(
	db *database.DB,
	tripRepo trip.TripRepository,
	eventRepo event.EventRepository,
	employeeRepo employee.EmployeeRepository,
	notifier notification.Service,
) trip.TripService {
	return &TripServiceImpl{
		db:           db,
		tripRepo:     tripRepo,
		eventRepo:    eventRepo,
		employeeRepo: employeeRepo,
		notifier:     notifier,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Create implements trip.TripService.
func (s *TripServiceImpl) Create(ctx context.Context, companyID string, req trip.CreateTripRequest) (trip.TripResponse, error) {
	if err := req.Validate(); err != nil {
		return trip.TripResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return trip.TripResponse{}, fmt.Errorf("failed to resolve employee: %w", err)
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	created, err := s.tripRepo.Create(ctx, trip.BusinessTrip{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		EmployeeID:  emp.ID,
		Destination: req.Destination,
		Purpose:     req.Purpose,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      trip.StatusPending,
	})
	if err != nil {
		return trip.TripResponse{}, fmt.Errorf("failed to create business trip: %w", err)
	}

	return trip.ToResponse(created), nil
}

// Get implements trip.TripService.
func (s *TripServiceImpl) Get(ctx context.Context, companyID string, id string) (trip.TripResponse, error) {
	t, err := s.tripRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return trip.TripResponse{}, err
	}
	return trip.ToResponse(t), nil
}

// List implements trip.TripService.
func (s *TripServiceImpl) List(ctx context.Context, companyID string, filter trip.TripFilter) (trip.ListTripsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	trips, total, err := s.tripRepo.List(ctx, filter, companyID)
	if err != nil {
		return trip.ListTripsResponse{}, fmt.Errorf("failed to list business trips: %w", err)
	}

	responses := make([]trip.TripResponse, 0, len(trips))
	for _, t := range trips {
		responses = append(responses, trip.ToResponse(t))
	}

	return trip.ListTripsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Trips:      responses,
	}, nil
}

// Approve implements trip.TripService.
func (s *TripServiceImpl) Approve(ctx context.Context, companyID string, id string, approverID string) (trip.TripResponse, error) {
	t, err := s.tripRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return trip.TripResponse{}, err
	}
	if t.Status != trip.StatusPending {
		return trip.TripResponse{}, trip.ErrTripAlreadyProcessed
	}

	now := s.now()
	t.Status = trip.StatusApproved
	t.ApprovedBy = &approverID
	t.ApprovedAt = &now

	if err := s.tripRepo.Update(ctx, t); err != nil {
		return trip.TripResponse{}, fmt.Errorf("failed to approve business trip: %w", err)
	}

	s.notifyDecision(ctx, t, notification.TypeTripApproved, "Business trip approved",
		fmt.Sprintf("Your trip to %s was approved", t.Destination))

	return trip.ToResponse(t), nil
}

// Reject implements trip.TripService.
func (s *TripServiceImpl) Reject(ctx context.Context, companyID string, req trip.RejectTripRequest, reviewerID string) (trip.TripResponse, error) {
	if err := req.Validate(); err != nil {
		return trip.TripResponse{}, err
	}

	t, err := s.tripRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return trip.TripResponse{}, err
	}
	if t.Status != trip.StatusPending {
		return trip.TripResponse{}, trip.ErrTripAlreadyProcessed
	}

	now := s.now()
	t.Status = trip.StatusRejected
	t.ApprovedBy = &reviewerID
	t.ApprovedAt = &now
	t.RejectionReason = &req.Reason

	if err := s.tripRepo.Update(ctx, t); err != nil {
		return trip.TripResponse{}, fmt.Errorf("failed to reject business trip: %w", err)
	}

	s.notifyDecision(ctx, t, notification.TypeTripRejected, "Business trip rejected",
		fmt.Sprintf("Your trip to %s was rejected: %s", t.Destination, req.Reason))

	return trip.ToResponse(t), nil
}

// Start implements trip.TripService. The status transition and the
// BUSINESS_TRIP_START event commit together or not at all.
func (s *TripServiceImpl) Start(ctx context.Context, companyID string, id string) (trip.TripResponse, error) {
	t, err := s.tripRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return trip.TripResponse{}, err
	}
	switch t.Status {
	case trip.StatusApproved:
	case trip.StatusInProgress, trip.StatusCompleted:
		return trip.TripResponse{}, trip.ErrTripAlreadyStarted
	default:
		return trip.TripResponse{}, trip.ErrTripNotApproved
	}

	emp, err := s.employeeRepo.GetByID(ctx, t.EmployeeID, companyID)
	if err != nil {
		return trip.TripResponse{}, fmt.Errorf("failed to resolve employee: %w", err)
	}

	now := s.now()
	t.Status = trip.StatusInProgress
	t.StartedAt = &now

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.tripRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to update business trip: %w", err)
		}
		if err := s.eventRepo.Append(txCtx, event.AttendanceEvent{
			ID:        uuid.New().String(),
			UserID:    emp.UserID,
			CompanyID: companyID,
			Type:      event.TypeBusinessTripStart,
			Timestamp: now,
		}); err != nil {
			return fmt.Errorf("failed to append trip start event: %w", err)
		}
		return nil
	})
	if err != nil {
		return trip.TripResponse{}, err
	}

	return trip.ToResponse(t), nil
}

// End implements trip.TripService. Mirrors Start: trip completion and the
// BUSINESS_TRIP_END event are one transaction.
func (s *TripServiceImpl) End(ctx context.Context, companyID string, id string) (trip.TripResponse, error) {
	t, err := s.tripRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return trip.TripResponse{}, err
	}
	if t.Status != trip.StatusInProgress {
		return trip.TripResponse{}, trip.ErrTripNotInProgress
	}

	emp, err := s.employeeRepo.GetByID(ctx, t.EmployeeID, companyID)
	if err != nil {
		return trip.TripResponse{}, fmt.Errorf("failed to resolve employee: %w", err)
	}

	now := s.now()
	t.Status = trip.StatusCompleted
	t.EndedAt = &now

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.tripRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to update business trip: %w", err)
		}
		if err := s.eventRepo.Append(txCtx, event.AttendanceEvent{
			ID:        uuid.New().String(),
			UserID:    emp.UserID,
			CompanyID: companyID,
			Type:      event.TypeBusinessTripEnd,
			Timestamp: now,
		}); err != nil {
			return fmt.Errorf("failed to append trip end event: %w", err)
		}
		return nil
	})
	if err != nil {
		return trip.TripResponse{}, err
	}

	return trip.ToResponse(t), nil
}

func (s *TripServiceImpl) notifyDecision(ctx context.Context, t trip.BusinessTrip, typ notification.NotificationType, title, message string) {
	if s.notifier == nil {
		return
	}
	emp, err := s.employeeRepo.GetByID(ctx, t.EmployeeID, t.CompanyID)
	if err != nil {
		return
	}
	_ = s.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		CompanyID:   t.CompanyID,
		RecipientID: emp.UserID,
		Type:        typ,
		Title:       title,
		Message:     message,
		Data:        map[string]interface{}{"trip_id": t.ID},
	})
}
