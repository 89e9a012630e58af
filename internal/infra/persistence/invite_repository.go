package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/repository"
)

type InviteRepository struct {
	db *DB
}

var _ repository.InviteRepository = (*InviteRepository)(nil)

func NewInviteRepository(db *DB) *InviteRepository {
	return &InviteRepository{db: db}
}

func (r *InviteRepository) Create(ctx context.Context, invite *entity.Invite) error {
	invite.InvitedEmail = strings.ToLower(invite.InvitedEmail)
	return r.db.Write(ctx).Create(invite).Error
}

func (r *InviteRepository) GetByID(ctx context.Context, id uuid.UUID) (entity.Invite, error) {
	var invite entity.Invite
	if err := r.db.Read(ctx).First(&invite, "id = ?", id).Error; err != nil {
		return entity.Invite{}, asRepositoryError(err)
	}
	return invite, nil
}

func (r *InviteRepository) GetByToken(ctx context.Context, token string) (entity.Invite, error) {
	var invite entity.Invite
	if err := r.db.Read(ctx).First(&invite, "token = ?", token).Error; err != nil {
		return entity.Invite{}, asRepositoryError(err)
	}
	return invite, nil
}

func (r *InviteRepository) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]entity.Invite, error) {
	var invites []entity.Invite
	err := r.db.Read(ctx).
		Where("org_id = ?", orgID).
		Order("created_at DESC").
		Find(&invites).Error
	if err != nil {
		return nil, err
	}
	return invites, nil
}

func (r *InviteRepository) ListByEmail(ctx context.Context, email string, status entity.InviteStatus) ([]entity.Invite, error) {
	var invites []entity.Invite
	query := r.db.Read(ctx).Where("invited_email = ?", strings.ToLower(email))
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at DESC").Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

func (r *InviteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.InviteStatus) error {
	res := r.db.Write(ctx).
		Model(&entity.Invite{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
