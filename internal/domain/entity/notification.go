package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationInviteReceived NotificationType = "INVITE_RECEIVED"
	NotificationInviteAccepted NotificationType = "INVITE_ACCEPTED"
	NotificationIssueCommented NotificationType = "ISSUE_COMMENTED"
	NotificationRoleChanged    NotificationType = "ROLE_CHANGED"
)

// Notification is the consumer-side artifact of the event pipeline. DedupKey
// makes creation idempotent under at-least-once delivery: re-handling the
// same logical event hits the unique index and is a no-op.
type Notification struct {
	ID            uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	Type          NotificationType `gorm:"type:varchar(40);not null"`
	Message       string           `gorm:"not null"`
	ActionEvent   string           `gorm:""`
	ActionPayload datatypes.JSON   `gorm:"type:jsonb"`
	DedupKey      string           `gorm:"not null;uniqueIndex"`
	CreatedAt     time.Time        `gorm:"not null"`
	ReadAt        *time.Time       `gorm:""`
}

func (Notification) TableName() string {
	return "notifications"
}
