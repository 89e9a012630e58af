package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sj9102001/workly/internal/domain/entity"
)

type ProjectService interface {
	Create(ctx context.Context, actorID, orgID uuid.UUID, name string) (entity.Project, error)
	ListByOrg(ctx context.Context, actorID, orgID uuid.UUID) ([]entity.Project, error)
	AddMember(ctx context.Context, actorID, projectID, userID uuid.UUID) (entity.ProjectMember, error)
	CreateIssue(ctx context.Context, actorID, projectID uuid.UUID, title, description string, assigneeID *uuid.UUID) (entity.Issue, error)
	ListIssues(ctx context.Context, actorID, projectID uuid.UUID) ([]entity.Issue, error)
	CreateBoard(ctx context.Context, actorID, projectID uuid.UUID, name string) (entity.Board, error)
	ListBoards(ctx context.Context, actorID, projectID uuid.UUID) ([]entity.Board, error)
	AddColumn(ctx context.Context, actorID, boardID uuid.UUID, name string, position int) (entity.BoardColumn, error)
	ListColumns(ctx context.Context, actorID, boardID uuid.UUID) ([]entity.BoardColumn, error)
}
