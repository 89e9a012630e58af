package entity

import (
	"time"

	"github.com/google/uuid"
)

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "PENDING"
	InviteStatusAccepted InviteStatus = "ACCEPTED"
	InviteStatusDeclined InviteStatus = "DECLINED"
	InviteStatusRevoked  InviteStatus = "REVOKED"
	InviteStatusExpired  InviteStatus = "EXPIRED"
)

type Invite struct {
	ID           uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrgID        uuid.UUID    `gorm:"type:uuid;not null;index"`
	InvitedEmail string       `gorm:"not null;index"`
	InvitedRole  Role         `gorm:"type:varchar(20);not null"`
	Status       InviteStatus `gorm:"type:varchar(20);not null"`
	Token        string       `gorm:"not null;uniqueIndex"`
	CreatedByID  uuid.UUID    `gorm:"type:uuid;not null"`
	ExpiresAt    time.Time    `gorm:"not null"`
	CreatedAt    time.Time    `gorm:"not null"`
}

func (Invite) TableName() string {
	return "invites"
}
