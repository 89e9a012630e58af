package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sj9102001/workly/internal/domain/entity"
)

type InviteService interface {
	Create(ctx context.Context, actorID, orgID uuid.UUID, email string, role entity.Role) (entity.Invite, error)
	Accept(ctx context.Context, actorID uuid.UUID, token string) (entity.OrgMember, error)
	Decline(ctx context.Context, actorID uuid.UUID, token string) error
	Revoke(ctx context.Context, actorID, inviteID uuid.UUID) error
	ListForOrg(ctx context.Context, actorID, orgID uuid.UUID) ([]entity.Invite, error)
	ListMine(ctx context.Context, actorID uuid.UUID) ([]entity.Invite, error)
}
