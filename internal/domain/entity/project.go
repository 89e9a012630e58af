package entity

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrgID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Project) TableName() string {
	return "projects"
}

type ProjectMember struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_member"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_member"`
	CreatedAt time.Time `gorm:"not null"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}
