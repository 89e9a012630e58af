package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sj9102001/workly/internal/domain/entity"
)

type OrganizationRepository interface {
	Create(ctx context.Context, name string) (entity.Organization, error)
	GetByID(ctx context.Context, id uuid.UUID) (entity.Organization, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.Organization, error)

	AddMember(ctx context.Context, orgID, userID uuid.UUID, role entity.Role) (entity.OrgMember, error)
	GetMember(ctx context.Context, orgID, userID uuid.UUID) (entity.OrgMember, error)
	ListMembers(ctx context.Context, orgID uuid.UUID) ([]entity.OrgMember, error)
	UpdateMemberRole(ctx context.Context, orgID, userID uuid.UUID, role entity.Role) (entity.OrgMember, error)
	RemoveMember(ctx context.Context, orgID, userID uuid.UUID) error
}
