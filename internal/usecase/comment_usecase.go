package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/event"
	"github.com/sj9102001/workly/internal/domain/repository"
	"github.com/sj9102001/workly/internal/domain/service"
	"github.com/sj9102001/workly/internal/infra/pagination"
	"github.com/sj9102001/workly/internal/outbox"
)

type Comment struct {
	store    repository.Store
	comments repository.CommentRepository
	issues   repository.IssueRepository
	projects repository.ProjectRepository
	users    repository.UserRepository
	writer   *outbox.Writer
	log      *logrus.Logger
}

var _ service.CommentService = (*Comment)(nil)

func NewComment(
	store repository.Store,
	comments repository.CommentRepository,
	issues repository.IssueRepository,
	projects repository.ProjectRepository,
	users repository.UserRepository,
	writer *outbox.Writer,
	log *logrus.Logger,
) *Comment {
	return &Comment{
		store:    store,
		comments: comments,
		issues:   issues,
		projects: projects,
		users:    users,
		writer:   writer,
		log:      log,
	}
}

// Add inserts the comment and enqueues ISSUE_COMMENTED in one transaction.
// The payload is denormalized (author name, issue title) so handlers don't
// have to chase references at delivery time.
func (c *Comment) Add(ctx context.Context, actorID, issueID uuid.UUID, body string) (entity.Comment, error) {
	issue, err := c.issues.GetByID(ctx, issueID)
	if err != nil {
		return entity.Comment{}, err
	}
	if err := c.requireProjectMember(ctx, issue.ProjectID, actorID); err != nil {
		return entity.Comment{}, err
	}
	author, err := c.users.GetByID(ctx, actorID)
	if err != nil {
		return entity.Comment{}, err
	}
	project, err := c.projects.GetByID(ctx, issue.ProjectID)
	if err != nil {
		return entity.Comment{}, err
	}

	comment := entity.Comment{
		ID:       uuid.New(),
		IssueID:  issueID,
		AuthorID: actorID,
		Body:     body,
	}

	err = c.store.WithTx(ctx, func(ctx context.Context) error {
		if err := c.comments.Create(ctx, &comment); err != nil {
			return err
		}
		payload := event.IssueCommentedPayload{
			CommentID:   comment.ID.String(),
			IssueID:     issue.ID.String(),
			ProjectID:   issue.ProjectID.String(),
			IssueTitle:  issue.Title,
			AuthorID:    author.ID.String(),
			AuthorName:  author.Name,
			AuthorEmail: author.Email,
			Body:        comment.Body,
			ReporterID:  issue.ReporterID.String(),
			CreatedAt:   comment.CreatedAt,
		}
		if issue.AssigneeID != nil {
			assignee := issue.AssigneeID.String()
			payload.AssigneeID = &assignee
		}
		_, err := c.writer.Enqueue(ctx,
			event.TypeIssueCommented,
			project.OrgID,
			event.AggregateComment,
			comment.ID,
			issue.ID.String(),
			payload,
		)
		return err
	})
	if err != nil {
		c.log.WithError(err).Error("add comment failed")
		return entity.Comment{}, err
	}
	return comment, nil
}

func (c *Comment) List(ctx context.Context, actorID, issueID uuid.UUID, limit int, cursor string) ([]entity.Comment, string, error) {
	issue, err := c.issues.GetByID(ctx, issueID)
	if err != nil {
		return nil, "", err
	}
	if err := c.requireProjectMember(ctx, issue.ProjectID, actorID); err != nil {
		return nil, "", err
	}
	comments, err := c.comments.ListByIssue(ctx, issueID, limit, cursor)
	if err != nil {
		return nil, "", err
	}
	nextCursor := ""
	if len(comments) > 0 && len(comments) == limit {
		last := comments[len(comments)-1]
		nextCursor = pagination.Encode(last.CreatedAt, last.ID)
	}
	return comments, nextCursor, nil
}

func (c *Comment) Delete(ctx context.Context, actorID, issueID, commentID uuid.UUID) error {
	comment, err := c.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.IssueID != issueID {
		return repository.ErrNotFound
	}
	if comment.AuthorID != actorID {
		return ErrForbidden
	}
	return c.comments.Delete(ctx, commentID)
}

func (c *Comment) requireProjectMember(ctx context.Context, projectID, userID uuid.UUID) error {
	ok, err := c.projects.IsMember(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}
