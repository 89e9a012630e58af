package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/repository"
)

type OrganizationRepository struct {
	db *DB
}

var _ repository.OrganizationRepository = (*OrganizationRepository)(nil)

func NewOrganizationRepository(db *DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Create(ctx context.Context, name string) (entity.Organization, error) {
	org := entity.Organization{Name: name}
	if err := r.db.Write(ctx).Create(&org).Error; err != nil {
		return entity.Organization{}, err
	}
	return org, nil
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (entity.Organization, error) {
	var org entity.Organization
	if err := r.db.Read(ctx).First(&org, "id = ?", id).Error; err != nil {
		return entity.Organization{}, asRepositoryError(err)
	}
	return org, nil
}

func (r *OrganizationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.Organization, error) {
	var orgs []entity.Organization
	err := r.db.Read(ctx).
		Joins("JOIN org_members ON org_members.org_id = organizations.id").
		Where("org_members.user_id = ?", userID).
		Order("organizations.created_at ASC").
		Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *OrganizationRepository) AddMember(ctx context.Context, orgID, userID uuid.UUID, role entity.Role) (entity.OrgMember, error) {
	member := entity.OrgMember{OrgID: orgID, UserID: userID, Role: role}
	if err := r.db.Write(ctx).Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entity.OrgMember{}, repository.ErrAlreadyMember
		}
		return entity.OrgMember{}, err
	}
	return member, nil
}

func (r *OrganizationRepository) GetMember(ctx context.Context, orgID, userID uuid.UUID) (entity.OrgMember, error) {
	var member entity.OrgMember
	err := r.db.Read(ctx).
		First(&member, "org_id = ? AND user_id = ?", orgID, userID).Error
	if err != nil {
		return entity.OrgMember{}, asRepositoryError(err)
	}
	return member, nil
}

func (r *OrganizationRepository) ListMembers(ctx context.Context, orgID uuid.UUID) ([]entity.OrgMember, error) {
	var members []entity.OrgMember
	err := r.db.Read(ctx).
		Where("org_id = ?", orgID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *OrganizationRepository) UpdateMemberRole(ctx context.Context, orgID, userID uuid.UUID, role entity.Role) (entity.OrgMember, error) {
	res := r.db.Write(ctx).
		Model(&entity.OrgMember{}).
		Where("org_id = ? AND user_id = ?", orgID, userID).
		Update("role", role)
	if res.Error != nil {
		return entity.OrgMember{}, res.Error
	}
	if res.RowsAffected == 0 {
		return entity.OrgMember{}, repository.ErrNotFound
	}
	return r.GetMember(ctx, orgID, userID)
}

func (r *OrganizationRepository) RemoveMember(ctx context.Context, orgID, userID uuid.UUID) error {
	res := r.db.Write(ctx).
		Delete(&entity.OrgMember{}, "org_id = ? AND user_id = ?", orgID, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
