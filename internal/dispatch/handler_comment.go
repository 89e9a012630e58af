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

// CommentHandler notifies an issue's reporter and assignee about a new
// comment. The comment's author never gets notified about their own comment,
// and a user who is both reporter and assignee gets a single notification.
// Recipients are resolved against current state: a user who no longer exists
// or has left the project is skipped silently.
type CommentHandler struct {
	users    repository.UserRepository
	projects repository.ProjectRepository
	notifier *Notifier
}

func NewCommentHandler(users repository.UserRepository, projects repository.ProjectRepository, notifier *Notifier) *CommentHandler {
	return &CommentHandler{users: users, projects: projects, notifier: notifier}
}

func (h *CommentHandler) EventType() event.Type {
	return event.TypeIssueCommented
}

func (h *CommentHandler) Handle(ctx context.Context, payload json.RawMessage) error {
	var p event.IssueCommentedPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("dispatch: comment payload: %w", err)
	}

	recipients := make(map[string]bool)
	if p.ReporterID != "" {
		recipients[p.ReporterID] = true
	}
	if p.AssigneeID != nil {
		recipients[*p.AssigneeID] = true
	}
	delete(recipients, p.AuthorID)
	if len(recipients) == 0 {
		return nil
	}

	projectID, err := uuid.Parse(p.ProjectID)
	if err != nil {
		return fmt.Errorf("dispatch: comment payload project id: %w", err)
	}

	message := fmt.Sprintf("%s commented on issue: %s", p.AuthorName, p.IssueTitle)
	for recipient := range recipients {
		userID, err := uuid.Parse(recipient)
		if err != nil {
			return fmt.Errorf("dispatch: comment payload recipient id: %w", err)
		}
		if _, err := h.users.GetByID(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return err
		}
		member, err := h.projects.IsMember(ctx, projectID, userID)
		if err != nil {
			return err
		}
		if !member {
			continue
		}
		err = h.notifier.Notify(ctx,
			userID,
			entity.NotificationIssueCommented,
			message,
			string(event.TypeIssueCommented),
			map[string]string{
				"comment_id": p.CommentID,
				"issue_id":   p.IssueID,
				"project_id": p.ProjectID,
			},
			fmt.Sprintf("comment:%s:%s", p.CommentID, userID),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
