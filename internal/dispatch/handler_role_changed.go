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

// RoleChangedHandler tells a member their role in an organization changed.
// A member who no longer exists is skipped silently.
type RoleChangedHandler struct {
	users    repository.UserRepository
	orgs     repository.OrganizationRepository
	notifier *Notifier
}

func NewRoleChangedHandler(users repository.UserRepository, orgs repository.OrganizationRepository, notifier *Notifier) *RoleChangedHandler {
	return &RoleChangedHandler{users: users, orgs: orgs, notifier: notifier}
}

func (h *RoleChangedHandler) EventType() event.Type {
	return event.TypeOrgMemberRoleChanged
}

func (h *RoleChangedHandler) Handle(ctx context.Context, payload json.RawMessage) error {
	var p event.MemberRoleChangedPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("dispatch: role changed payload: %w", err)
	}

	userID, err := uuid.Parse(p.UserID)
	if err != nil {
		return fmt.Errorf("dispatch: role changed user id: %w", err)
	}
	if _, err := h.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	orgID, err := uuid.Parse(p.OrganizationID)
	if err != nil {
		return fmt.Errorf("dispatch: role changed org id: %w", err)
	}
	org, err := h.orgs.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	message := fmt.Sprintf("Your role in %s changed from %s to %s.", org.Name, p.OldRole, p.NewRole)
	return h.notifier.Notify(ctx,
		userID,
		entity.NotificationRoleChanged,
		message,
		string(event.TypeOrgMemberRoleChanged),
		map[string]string{
			"org_id":   p.OrganizationID,
			"new_role": p.NewRole,
		},
		fmt.Sprintf("role:%s:%s:%s", p.OrganizationID, p.UserID, p.NewRole),
	)
}
