package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/event"
	"github.com/sj9102001/workly/internal/domain/repository"
	"github.com/sj9102001/workly/internal/domain/service"
	"github.com/sj9102001/workly/internal/outbox"
)

const inviteTTL = 7 * 24 * time.Hour

type Invite struct {
	store   repository.Store
	invites repository.InviteRepository
	orgs    repository.OrganizationRepository
	users   repository.UserRepository
	writer  *outbox.Writer
	log     *logrus.Logger
}

var _ service.InviteService = (*Invite)(nil)

func NewInvite(
	store repository.Store,
	invites repository.InviteRepository,
	orgs repository.OrganizationRepository,
	users repository.UserRepository,
	writer *outbox.Writer,
	log *logrus.Logger,
) *Invite {
	return &Invite{store: store, invites: invites, orgs: orgs, users: users, writer: writer, log: log}
}

// Create issues a PENDING invite and enqueues ORG_MEMBER_INVITED in the same
// transaction, so the notification event exists iff the invite does.
func (i *Invite) Create(ctx context.Context, actorID, orgID uuid.UUID, email string, role entity.Role) (entity.Invite, error) {
	if err := i.requireAdmin(ctx, orgID, actorID); err != nil {
		return entity.Invite{}, err
	}
	if role == entity.RoleOwner {
		return entity.Invite{}, ErrForbidden
	}

	token, err := newInviteToken()
	if err != nil {
		return entity.Invite{}, err
	}
	invite := entity.Invite{
		ID:           uuid.New(),
		OrgID:        orgID,
		InvitedEmail: strings.ToLower(email),
		InvitedRole:  role,
		Status:       entity.InviteStatusPending,
		Token:        token,
		CreatedByID:  actorID,
		ExpiresAt:    time.Now().UTC().Add(inviteTTL),
	}

	err = i.store.WithTx(ctx, func(ctx context.Context) error {
		if err := i.invites.Create(ctx, &invite); err != nil {
			return err
		}
		_, err := i.writer.Enqueue(ctx,
			event.TypeOrgMemberInvited,
			orgID,
			event.AggregateOrgInvitation,
			invite.ID,
			orgID.String(),
			event.MemberInvitedPayload{
				OrganizationID:  orgID.String(),
				InvitedByUserID: actorID.String(),
				InvitedEmail:    invite.InvitedEmail,
				InvitedRole:     string(role),
				InviteID:        invite.ID.String(),
				InviteToken:     invite.Token,
				ExpiresAt:       invite.ExpiresAt,
			},
		)
		return err
	})
	if err != nil {
		i.log.WithError(err).Error("create invite failed")
		return entity.Invite{}, err
	}
	return invite, nil
}

// Accept turns a pending invite into an org membership. The status change,
// membership insert and ORG_INVITE_ACCEPTED all commit together.
func (i *Invite) Accept(ctx context.Context, actorID uuid.UUID, token string) (entity.OrgMember, error) {
	invite, err := i.invites.GetByToken(ctx, token)
	if err != nil {
		return entity.OrgMember{}, err
	}
	actor, err := i.users.GetByID(ctx, actorID)
	if err != nil {
		return entity.OrgMember{}, err
	}
	if err := checkAcceptable(invite, actor); err != nil {
		return entity.OrgMember{}, err
	}

	var member entity.OrgMember
	err = i.store.WithTx(ctx, func(ctx context.Context) error {
		if err := i.invites.UpdateStatus(ctx, invite.ID, entity.InviteStatusAccepted); err != nil {
			return err
		}
		var err error
		member, err = i.orgs.AddMember(ctx, invite.OrgID, actorID, invite.InvitedRole)
		if err != nil {
			return err
		}
		_, err = i.writer.Enqueue(ctx,
			event.TypeOrgInviteAccepted,
			invite.OrgID,
			event.AggregateOrgInvitation,
			invite.ID,
			invite.OrgID.String(),
			event.InviteAcceptedPayload{
				OrganizationID:   invite.OrgID.String(),
				InviteID:         invite.ID.String(),
				InvitedByUserID:  invite.CreatedByID.String(),
				AcceptedByUserID: actorID.String(),
				AcceptedByName:   actor.Name,
				Role:             string(invite.InvitedRole),
			},
		)
		return err
	})
	if err != nil {
		i.log.WithError(err).Error("accept invite failed")
		return entity.OrgMember{}, err
	}
	return member, nil
}

func (i *Invite) Decline(ctx context.Context, actorID uuid.UUID, token string) error {
	invite, err := i.invites.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	actor, err := i.users.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if err := checkAcceptable(invite, actor); err != nil {
		return err
	}
	return i.invites.UpdateStatus(ctx, invite.ID, entity.InviteStatusDeclined)
}

func (i *Invite) Revoke(ctx context.Context, actorID, inviteID uuid.UUID) error {
	invite, err := i.invites.GetByID(ctx, inviteID)
	if err != nil {
		return err
	}
	if err := i.requireAdmin(ctx, invite.OrgID, actorID); err != nil {
		return err
	}
	if invite.Status != entity.InviteStatusPending {
		return ErrInviteNotPending
	}

	err = i.store.WithTx(ctx, func(ctx context.Context) error {
		if err := i.invites.UpdateStatus(ctx, invite.ID, entity.InviteStatusRevoked); err != nil {
			return err
		}
		_, err := i.writer.Enqueue(ctx,
			event.TypeOrgInviteRevoked,
			invite.OrgID,
			event.AggregateOrgInvitation,
			invite.ID,
			invite.OrgID.String(),
			event.InviteRevokedPayload{
				OrganizationID:  invite.OrgID.String(),
				InviteID:        invite.ID.String(),
				RevokedByUserID: actorID.String(),
				InvitedEmail:    invite.InvitedEmail,
			},
		)
		return err
	})
	if err != nil {
		i.log.WithError(err).Error("revoke invite failed")
	}
	return err
}

func (i *Invite) ListForOrg(ctx context.Context, actorID, orgID uuid.UUID) ([]entity.Invite, error) {
	if err := i.requireAdmin(ctx, orgID, actorID); err != nil {
		return nil, err
	}
	return i.invites.ListByOrg(ctx, orgID)
}

func (i *Invite) ListMine(ctx context.Context, actorID uuid.UUID) ([]entity.Invite, error) {
	actor, err := i.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return i.invites.ListByEmail(ctx, actor.Email, entity.InviteStatusPending)
}

func (i *Invite) requireAdmin(ctx context.Context, orgID, userID uuid.UUID) error {
	member, err := i.orgs.GetMember(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if member.Role != entity.RoleOwner && member.Role != entity.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

func checkAcceptable(invite entity.Invite, actor entity.User) error {
	if invite.Status != entity.InviteStatusPending {
		return ErrInviteNotPending
	}
	if time.Now().UTC().After(invite.ExpiresAt) {
		return ErrInviteExpired
	}
	if !strings.EqualFold(invite.InvitedEmail, actor.Email) {
		return ErrInviteEmailMismatch
	}
	return nil
}

func newInviteToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
