package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeOvertimeAlert      NotificationType = "overtime_alert"
	TypeTripApproved       NotificationType = "trip_approved"
	TypeTripRejected       NotificationType = "trip_rejected"
	TypeCorrectionApproved NotificationType = "correction_approved"
	TypeCorrectionRejected NotificationType = "correction_rejected"
)

// Notification represents an in-app notification entity
type Notification struct {
	ID          string
	CompanyID   string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
