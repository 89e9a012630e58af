package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sj9102001/workly/internal/domain/entity"
)

type OrganizationService interface {
	Create(ctx context.Context, actorID uuid.UUID, name string) (entity.Organization, error)
	ListMine(ctx context.Context, actorID uuid.UUID) ([]entity.Organization, error)
	ListMembers(ctx context.Context, actorID, orgID uuid.UUID) ([]entity.OrgMember, error)
	ChangeMemberRole(ctx context.Context, actorID, orgID, memberUserID uuid.UUID, role entity.Role) (entity.OrgMember, error)
	RemoveMember(ctx context.Context, actorID, orgID, memberUserID uuid.UUID) error
}
