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

// InviteAcceptedHandler tells the inviter their invite was accepted. An
// inviter who no longer exists is skipped silently.
type InviteAcceptedHandler struct {
	users    repository.UserRepository
	orgs     repository.OrganizationRepository
	notifier *Notifier
}

func NewInviteAcceptedHandler(users repository.UserRepository, orgs repository.OrganizationRepository, notifier *Notifier) *InviteAcceptedHandler {
	return &InviteAcceptedHandler{users: users, orgs: orgs, notifier: notifier}
}

func (h *InviteAcceptedHandler) EventType() event.Type {
	return event.TypeOrgInviteAccepted
}

func (h *InviteAcceptedHandler) Handle(ctx context.Context, payload json.RawMessage) error {
	var p event.InviteAcceptedPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("dispatch: invite accepted payload: %w", err)
	}

	inviterID, err := uuid.Parse(p.InvitedByUserID)
	if err != nil {
		return fmt.Errorf("dispatch: invite accepted inviter id: %w", err)
	}
	if _, err := h.users.GetByID(ctx, inviterID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	orgID, err := uuid.Parse(p.OrganizationID)
	if err != nil {
		return fmt.Errorf("dispatch: invite accepted org id: %w", err)
	}
	org, err := h.orgs.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	message := fmt.Sprintf("%s accepted your invitation to %s.", p.AcceptedByName, org.Name)
	return h.notifier.Notify(ctx,
		inviterID,
		entity.NotificationInviteAccepted,
		message,
		string(event.TypeOrgInviteAccepted),
		map[string]string{
			"invite_id": p.InviteID,
			"org_id":    p.OrganizationID,
			"user_id":   p.AcceptedByUserID,
		},
		fmt.Sprintf("invite-accepted:%s:%s", p.InviteID, p.AcceptedByUserID),
	)
}
