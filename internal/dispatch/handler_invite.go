package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/event"
	"github.com/sj9102001/workly/internal/domain/repository"
)

const expiresFormat = "Jan 2, 2006 3:04 PM"

// InviteHandler notifies the invited user when an invite is created. Invites
// to email addresses with no account are skipped: those users get the email,
// and an in-app notification has nowhere to land.
type InviteHandler struct {
	users    repository.UserRepository
	orgs     repository.OrganizationRepository
	notifier *Notifier
}

func NewInviteHandler(users repository.UserRepository, orgs repository.OrganizationRepository, notifier *Notifier) *InviteHandler {
	return &InviteHandler{users: users, orgs: orgs, notifier: notifier}
}

func (h *InviteHandler) EventType() event.Type {
	return event.TypeOrgMemberInvited
}

func (h *InviteHandler) Handle(ctx context.Context, payload json.RawMessage) error {
	var p event.MemberInvitedPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("dispatch: invite payload: %w", err)
	}

	user, err := h.users.GetByEmail(ctx, p.InvitedEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	orgID, err := uuid.Parse(p.OrganizationID)
	if err != nil {
		return fmt.Errorf("dispatch: invite payload org id: %w", err)
	}
	org, err := h.orgs.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	message := fmt.Sprintf(
		"You have been invited to %s as %s. Invitation expires at %s.",
		org.Name, p.InvitedRole, p.ExpiresAt.UTC().Format(expiresFormat),
	)
	return h.notifier.Notify(ctx,
		user.ID,
		entity.NotificationInviteReceived,
		message,
		string(event.TypeOrgMemberInvited),
		map[string]string{
			"invite_id":  p.InviteID,
			"org_id":     p.OrganizationID,
			"accept_url": "/invite/" + p.InviteToken,
		},
		fmt.Sprintf("invite:%s:%s", p.InviteID, user.ID),
	)
}
