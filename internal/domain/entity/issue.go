package entity

import (
	"time"

	"github.com/google/uuid"
)

type IssueStatus string

const (
	IssueStatusOpen       IssueStatus = "OPEN"
	IssueStatusInProgress IssueStatus = "IN_PROGRESS"
	IssueStatusDone       IssueStatus = "DONE"
)

type Issue struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID   uuid.UUID   `gorm:"type:uuid;not null;index"`
	ColumnID    *uuid.UUID  `gorm:"type:uuid"`
	Title       string      `gorm:"not null"`
	Description string      `gorm:""`
	Status      IssueStatus `gorm:"type:varchar(20);not null"`
	ReporterID  uuid.UUID   `gorm:"type:uuid;not null"`
	AssigneeID  *uuid.UUID  `gorm:"type:uuid"`
	CreatedAt   time.Time   `gorm:"not null"`
	UpdatedAt   time.Time   `gorm:"not null"`
}

func (Issue) TableName() string {
	return "issues"
}
