package entity

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

type Organization struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Organization) TableName() string {
	return "organizations"
}

type OrgMember struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrgID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_org_member"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_org_member"`
	Role      Role      `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (OrgMember) TableName() string {
	return "org_members"
}
