package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sj9102001/workly/internal/domain/entity"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (entity.Project, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID) ([]entity.Project, error)

	AddMember(ctx context.Context, projectID, userID uuid.UUID) (entity.ProjectMember, error)
	IsMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
}

type BoardRepository interface {
	Create(ctx context.Context, board *entity.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (entity.Board, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.Board, error)
	CreateColumn(ctx context.Context, column *entity.BoardColumn) error
	ListColumns(ctx context.Context, boardID uuid.UUID) ([]entity.BoardColumn, error)
}

type IssueRepository interface {
	Create(ctx context.Context, issue *entity.Issue) error
	GetByID(ctx context.Context, id uuid.UUID) (entity.Issue, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.Issue, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (entity.Comment, error)
	ListByIssue(ctx context.Context, issueID uuid.UUID, limit int, cursor string) ([]entity.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
