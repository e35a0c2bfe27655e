package correction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/correction"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/employee"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/event"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/notification"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/pkg/database"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/repository/postgresql"
)

type CorrectionServiceImpl struct {
	db             *database.DB
	correctionRepo correction.CorrectionRepository
	eventRepo      event.EventRepository
	employeeRepo   employee.EmployeeRepository
	notifier       notification.Service
	now            func() time.Time
}

func NewCorrectionService(
	db *database.DB,
	correctionRepo correction.CorrectionRepository,
	eventRepo event.EventRepository,
	employeeRepo employee.EmployeeRepository,
	notifier notification.Service,
) correction.CorrectionService {
	return &CorrectionServiceImpl{
		db:             db,
		correctionRepo: correctionRepo,
		eventRepo:      eventRepo,
		employeeRepo:   employeeRepo,
		notifier:       notifier,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Create implements correction.CorrectionService.
func (s *CorrectionServiceImpl) Create(ctx context.Context, companyID string, req correction.CreateCorrectionRequest) (correction.CorrectionResponse, error) {
	if err := req.Validate(); err != nil {
		return correction.CorrectionResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return correction.CorrectionResponse{}, fmt.Errorf("failed to resolve employee: %w", err)
	}

	requestedTime, _ := time.Parse(time.RFC3339, req.RequestedTime)

	created, err := s.correctionRepo.Create(ctx, correction.Correction{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		EmployeeID:    emp.ID,
		UserID:        emp.UserID,
		EventType:     event.EventType(req.EventType),
		RequestedTime: requestedTime.UTC(),
		Reason:        req.Reason,
		Status:        correction.StatusPending,
	})
	if err != nil {
		return correction.CorrectionResponse{}, fmt.Errorf("failed to create correction request: %w", err)
	}

	return correction.ToResponse(created), nil
}

// Get implements correction.CorrectionService.
func (s *CorrectionServiceImpl) Get(ctx context.Context, companyID string, id string) (correction.CorrectionResponse, error) {
	c, err := s.correctionRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}
	return correction.ToResponse(c), nil
}

// List implements correction.CorrectionService.
func (s *CorrectionServiceImpl) List(ctx context.Context, companyID string, filter correction.CorrectionFilter) (correction.ListCorrectionsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	corrections, total, err := s.correctionRepo.List(ctx, filter, companyID)
	if err != nil {
		return correction.ListCorrectionsResponse{}, fmt.Errorf("failed to list correction requests: %w", err)
	}

	responses := make([]correction.CorrectionResponse, 0, len(corrections))
	for _, c := range corrections {
		responses = append(responses, correction.ToResponse(c))
	}

	return correction.ListCorrectionsResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		Corrections: responses,
	}, nil
}

// Approve implements correction.CorrectionService. The appended event carries
// the requested historical timestamp; reconstruction re-sorts by timestamp, so
// the fix lands in the right place without rewriting history.
func (s *CorrectionServiceImpl) Approve(ctx context.Context, companyID string, id string, reviewerID string) (correction.CorrectionResponse, error) {
	c, err := s.correctionRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}
	if c.Status != correction.StatusPending {
		return correction.CorrectionResponse{}, correction.ErrCorrectionAlreadyProcessed
	}

	now := s.now()
	eventID := uuid.New().String()
	note := fmt.Sprintf("correction: %s", c.Reason)

	c.Status = correction.StatusApproved
	c.ReviewedBy = &reviewerID
	c.ReviewedAt = &now
	c.AppendedEventID = &eventID

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.correctionRepo.Update(txCtx, c); err != nil {
			return fmt.Errorf("failed to update correction request: %w", err)
		}
		if err := s.eventRepo.Append(txCtx, event.AttendanceEvent{
			ID:        eventID,
			UserID:    c.UserID,
			CompanyID: companyID,
			Type:      c.EventType,
			Timestamp: c.RequestedTime,
			Notes:     &note,
		}); err != nil {
			return fmt.Errorf("failed to append corrective event: %w", err)
		}
		return nil
	})
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	s.notifyDecision(ctx, c, notification.TypeCorrectionApproved, "Correction approved",
		fmt.Sprintf("Your %s correction for %s was approved", c.EventType, c.RequestedTime.Format("2006-01-02 15:04")))

	return correction.ToResponse(c), nil
}

// Reject implements correction.CorrectionService.
func (s *CorrectionServiceImpl) Reject(ctx context.Context, companyID string, req correction.RejectCorrectionRequest, reviewerID string) (correction.CorrectionResponse, error) {
	if err := req.Validate(); err != nil {
		return correction.CorrectionResponse{}, err
	}

	c, err := s.correctionRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}
	if c.Status != correction.StatusPending {
		return correction.CorrectionResponse{}, correction.ErrCorrectionAlreadyProcessed
	}

	now := s.now()
	c.Status = correction.StatusRejected
	c.ReviewedBy = &reviewerID
	c.ReviewedAt = &now
	c.RejectionReason = &req.Reason

	if err := s.correctionRepo.Update(ctx, c); err != nil {
		return correction.CorrectionResponse{}, fmt.Errorf("failed to reject correction request: %w", err)
	}

	s.notifyDecision(ctx, c, notification.TypeCorrectionRejected, "Correction rejected",
		fmt.Sprintf("Your %s correction was rejected: %s", c.EventType, req.Reason))

	return correction.ToResponse(c), nil
}

func (s *CorrectionServiceImpl) notifyDecision(ctx context.Context, c correction.Correction, typ notification.NotificationType, title, message string) {
	if s.notifier == nil {
		return
	}
	_ = s.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		CompanyID:   c.CompanyID,
		RecipientID: c.UserID,
		Type:        typ,
		Title:       title,
		Message:     message,
		Data:        map[string]interface{}{"correction_id": c.ID},
	})
}
