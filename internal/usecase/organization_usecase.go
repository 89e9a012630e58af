package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/event"
	"github.com/sj9102001/workly/internal/domain/repository"
	"github.com/sj9102001/workly/internal/domain/service"
	"github.com/sj9102001/workly/internal/outbox"
)

type Organization struct {
	store  repository.Store
	orgs   repository.OrganizationRepository
	writer *outbox.Writer
	log    *logrus.Logger
}

var _ service.OrganizationService = (*Organization)(nil)

func NewOrganization(store repository.Store, orgs repository.OrganizationRepository, writer *outbox.Writer, log *logrus.Logger) *Organization {
	return &Organization{store: store, orgs: orgs, writer: writer, log: log}
}

// Create makes the organization, adds the creator as OWNER and enqueues
// ORG_CREATED in one transaction.
func (o *Organization) Create(ctx context.Context, actorID uuid.UUID, name string) (entity.Organization, error) {
	var org entity.Organization
	err := o.store.WithTx(ctx, func(ctx context.Context) error {
		var err error
		org, err = o.orgs.Create(ctx, name)
		if err != nil {
			return err
		}
		if _, err = o.orgs.AddMember(ctx, org.ID, actorID, entity.RoleOwner); err != nil {
			return err
		}
		_, err = o.writer.Enqueue(ctx,
			event.TypeOrgCreated,
			org.ID,
			event.AggregateOrganization,
			org.ID,
			org.ID.String(),
			event.OrgCreatedPayload{
				OrganizationID:  org.ID.String(),
				Name:            org.Name,
				CreatedByUserID: actorID.String(),
			},
		)
		return err
	})
	if err != nil {
		o.log.WithError(err).Error("create organization failed")
		return entity.Organization{}, err
	}
	return org, nil
}

func (o *Organization) ListMine(ctx context.Context, actorID uuid.UUID) ([]entity.Organization, error) {
	return o.orgs.ListForUser(ctx, actorID)
}

func (o *Organization) ListMembers(ctx context.Context, actorID, orgID uuid.UUID) ([]entity.OrgMember, error) {
	if _, err := o.requireMember(ctx, orgID, actorID); err != nil {
		return nil, err
	}
	return o.orgs.ListMembers(ctx, orgID)
}

func (o *Organization) ChangeMemberRole(ctx context.Context, actorID, orgID, memberUserID uuid.UUID, role entity.Role) (entity.OrgMember, error) {
	if err := o.requireAdmin(ctx, orgID, actorID); err != nil {
		return entity.OrgMember{}, err
	}
	current, err := o.orgs.GetMember(ctx, orgID, memberUserID)
	if err != nil {
		return entity.OrgMember{}, err
	}
	if current.Role == entity.RoleOwner {
		return entity.OrgMember{}, ErrOwnerCannotBeDemoted
	}
	if current.Role == role {
		return current, nil
	}

	var updated entity.OrgMember
	err = o.store.WithTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = o.orgs.UpdateMemberRole(ctx, orgID, memberUserID, role)
		if err != nil {
			return err
		}
		_, err = o.writer.Enqueue(ctx,
			event.TypeOrgMemberRoleChanged,
			orgID,
			event.AggregateOrgMember,
			memberUserID,
			orgID.String(),
			event.MemberRoleChangedPayload{
				OrganizationID:  orgID.String(),
				UserID:          memberUserID.String(),
				ChangedByUserID: actorID.String(),
				OldRole:         string(current.Role),
				NewRole:         string(role),
			},
		)
		return err
	})
	if err != nil {
		o.log.WithError(err).Error("change member role failed")
		return entity.OrgMember{}, err
	}
	return updated, nil
}

func (o *Organization) RemoveMember(ctx context.Context, actorID, orgID, memberUserID uuid.UUID) error {
	if err := o.requireAdmin(ctx, orgID, actorID); err != nil {
		return err
	}
	current, err := o.orgs.GetMember(ctx, orgID, memberUserID)
	if err != nil {
		return err
	}
	if current.Role == entity.RoleOwner {
		return ErrOwnerCannotBeRemoved
	}

	err = o.store.WithTx(ctx, func(ctx context.Context) error {
		if err := o.orgs.RemoveMember(ctx, orgID, memberUserID); err != nil {
			return err
		}
		_, err := o.writer.Enqueue(ctx,
			event.TypeOrgMemberRemoved,
			orgID,
			event.AggregateOrgMember,
			memberUserID,
			orgID.String(),
			event.MemberRemovedPayload{
				OrganizationID:  orgID.String(),
				UserID:          memberUserID.String(),
				RemovedByUserID: actorID.String(),
			},
		)
		return err
	})
	if err != nil {
		o.log.WithError(err).Error("remove member failed")
	}
	return err
}

func (o *Organization) requireMember(ctx context.Context, orgID, userID uuid.UUID) (entity.OrgMember, error) {
	member, err := o.orgs.GetMember(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.OrgMember{}, ErrForbidden
		}
		return entity.OrgMember{}, err
	}
	return member, nil
}

func (o *Organization) requireAdmin(ctx context.Context, orgID, userID uuid.UUID) error {
	member, err := o.requireMember(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if member.Role != entity.RoleOwner && member.Role != entity.RoleAdmin {
		return ErrForbidden
	}
	return nil
}
