package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sj9102001/workly/internal/domain/entity"
)

type InviteRepository interface {
	Create(ctx context.Context, invite *entity.Invite) error
	GetByID(ctx context.Context, id uuid.UUID) (entity.Invite, error)
	GetByToken(ctx context.Context, token string) (entity.Invite, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID) ([]entity.Invite, error)
	ListByEmail(ctx context.Context, email string, status entity.InviteStatus) ([]entity.Invite, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.InviteStatus) error
}
